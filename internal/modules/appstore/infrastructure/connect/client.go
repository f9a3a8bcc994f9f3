package connect

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dorecipe/dorecipe-api/internal/modules/appstore/domain"
	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://api.appstoreconnect.apple.com/v1"

// Short per-request timeout keeps the day-by-day fetch loop bounded even
// when every date in the range fails.
const requestTimeout = 5 * time.Second

// Fixed column positions in the SALES/SUMMARY report.
const (
	colSKU         = 2
	colProductType = 6
	colUnits       = 7
	colProceeds    = 9
	minColumns     = 10
)

// Client talks to the App Store Connect API: daily sales reports, app info,
// and customer reviews. Published day reports are immutable, so parsed rows
// are cached in-process and repeat dashboard loads skip the network.
type Client struct {
	tokens       *TokenSource
	httpClient   *http.Client
	baseURL      string
	vendorNumber string
	appID        string
	productSKU   string
	dayCache     *gocache.Cache
}

// NewClient creates an App Store Connect client scoped to one vendor and one
// tracked product SKU.
func NewClient(tokens *TokenSource, vendorNumber, appID, productSKU string) *Client {
	return &Client{
		tokens:       tokens,
		httpClient:   &http.Client{Timeout: requestTimeout},
		baseURL:      defaultBaseURL,
		vendorNumber: vendorNumber,
		appID:        appID,
		productSKU:   productSKU,
		dayCache:     gocache.New(12*time.Hour, time.Hour),
	}
}

// DailySales fetches one day's SALES/SUMMARY report and returns the rows for
// the tracked product. A missing report, an HTTP error, and a timeout are
// indistinguishable to callers: all mean "no data for this date".
func (c *Client) DailySales(ctx context.Context, date time.Time) ([]domain.SalesRow, error) {
	reportDate := date.Format("2006-01-02")

	if cached, ok := c.dayCache.Get(reportDate); ok {
		return cached.([]domain.SalesRow), nil
	}

	token, err := c.tokens.Token()
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("filter[frequency]", "DAILY")
	params.Set("filter[reportSubType]", "SUMMARY")
	params.Set("filter[reportType]", "SALES")
	params.Set("filter[vendorNumber]", c.vendorNumber)
	params.Set("filter[reportDate]", reportDate)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/salesReports?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/a-gzip")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReportUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d for %s", domain.ErrReportUnavailable, resp.StatusCode, reportDate)
	}

	rows, err := parseSalesReport(resp.Body, c.productSKU)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReportUnavailable, err)
	}

	c.dayCache.SetDefault(reportDate, rows)
	return rows, nil
}

// parseSalesReport gunzips the payload, drops the header row, and keeps only
// rows whose SKU matches the tracked product. Malformed rows are skipped.
func parseSalesReport(r io.Reader, productSKU string) ([]domain.SalesRow, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress report: %w", err)
	}
	defer gz.Close()

	raw, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	lines := strings.Split(string(raw), "\n")
	rows := make([]domain.SalesRow, 0, len(lines))

	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) < minColumns {
			continue
		}
		if cols[colSKU] != productSKU {
			continue
		}

		units, _ := strconv.Atoi(cols[colUnits])
		proceeds, err := decimal.NewFromString(cols[colProceeds])
		if err != nil {
			proceeds = decimal.Zero
		}

		rows = append(rows, domain.SalesRow{
			SKU:           cols[colSKU],
			ProductTypeID: cols[colProductType],
			Units:         units,
			Proceeds:      proceeds,
		})
	}

	return rows, nil
}

// AppInfo fetches the app resource for the configured app id.
func (c *Client) AppInfo(ctx context.Context) (*domain.AppInfo, error) {
	var payload struct {
		Data struct {
			Attributes struct {
				Name          string `json:"name"`
				VersionString string `json:"versionString"`
			} `json:"attributes"`
		} `json:"data"`
	}

	if err := c.getJSON(ctx, "/apps/"+c.appID, nil, &payload); err != nil {
		return nil, err
	}

	return &domain.AppInfo{
		Name:          payload.Data.Attributes.Name,
		VersionString: payload.Data.Attributes.VersionString,
	}, nil
}

// CustomerReviews fetches the most recent customer reviews for the app.
func (c *Client) CustomerReviews(ctx context.Context, limit int) ([]domain.Review, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("sort", "-createdDate")

	var payload struct {
		Data []struct {
			ID         string `json:"id"`
			Attributes struct {
				Rating           int       `json:"rating"`
				Title            string    `json:"title"`
				Body             string    `json:"body"`
				ReviewerNickname string    `json:"reviewerNickname"`
				Territory        string    `json:"territory"`
				CreatedDate      time.Time `json:"createdDate"`
			} `json:"attributes"`
		} `json:"data"`
	}

	if err := c.getJSON(ctx, "/apps/"+c.appID+"/customerReviews", params, &payload); err != nil {
		return nil, err
	}

	reviews := make([]domain.Review, 0, len(payload.Data))
	for _, item := range payload.Data {
		reviews = append(reviews, domain.Review{
			ID:          item.ID,
			Rating:      item.Attributes.Rating,
			Title:       item.Attributes.Title,
			Body:        item.Attributes.Body,
			Reviewer:    item.Attributes.ReviewerNickname,
			Territory:   item.Attributes.Territory,
			CreatedDate: item.Attributes.CreatedDate,
		})
	}

	return reviews, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	token, err := c.tokens.Token()
	if err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("app store connect returned status %d for %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
