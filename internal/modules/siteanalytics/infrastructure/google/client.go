package google

import (
	"context"
	"fmt"
	"strconv"
	"time"

	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
	"google.golang.org/api/option"
	searchconsole "google.golang.org/api/searchconsole/v1"

	"github.com/dorecipe/dorecipe-api/internal/modules/siteanalytics/domain"
	"github.com/dorecipe/dorecipe-api/internal/shared/infrastructure/config"
)

const gaDateFormat = "2006-01-02"

// conversionEvents are the first-party events the marketing site reports
// into GA4; the dashboard only surfaces these.
var conversionEvents = []string{"download_click", "feature_view", "cta_click"}

// Client wraps the GA4 Data API and the Search Console API behind the
// handful of report shapes the dashboard needs.
type Client struct {
	analytics  *analyticsdata.Service
	search     *searchconsole.Service
	propertyID string
	siteURL    string
}

// NewClient builds both Google API services from a service account key.
func NewClient(ctx context.Context, cfg config.GoogleConfig) (*Client, error) {
	creds := option.WithCredentialsJSON([]byte(cfg.CredentialsJSON))

	analytics, err := analyticsdata.NewService(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics data service: %w", err)
	}

	search, err := searchconsole.NewService(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to create search console service: %w", err)
	}

	return &Client{
		analytics:  analytics,
		search:     search,
		propertyID: cfg.PropertyID,
		siteURL:    cfg.SearchConsoleSite,
	}, nil
}

// Conversions returns per-event counts for the tracked conversion events.
func (c *Client) Conversions(ctx context.Context, start, end time.Time) ([]domain.EventCount, error) {
	report, err := c.runReport(ctx, &analyticsdata.RunReportRequest{
		DateRanges: []*analyticsdata.DateRange{dateRange(start, end)},
		Dimensions: []*analyticsdata.Dimension{{Name: "eventName"}},
		Metrics:    []*analyticsdata.Metric{{Name: "eventCount"}},
		DimensionFilter: &analyticsdata.FilterExpression{
			Filter: &analyticsdata.Filter{
				FieldName:    "eventName",
				InListFilter: &analyticsdata.InListFilter{Values: conversionEvents},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversions: %w", err)
	}

	counts := make([]domain.EventCount, 0, len(report.Rows))
	for _, row := range report.Rows {
		counts = append(counts, domain.EventCount{
			Event: dimensionValue(row, 0),
			Count: metricInt(row, 0),
		})
	}
	return counts, nil
}

// TopChannels returns the five channel groups driving the most sessions.
func (c *Client) TopChannels(ctx context.Context, start, end time.Time) ([]domain.ChannelSessions, error) {
	report, err := c.runReport(ctx, &analyticsdata.RunReportRequest{
		DateRanges: []*analyticsdata.DateRange{dateRange(start, end)},
		Dimensions: []*analyticsdata.Dimension{{Name: "sessionDefaultChannelGroup"}},
		Metrics:    []*analyticsdata.Metric{{Name: "sessions"}},
		OrderBys: []*analyticsdata.OrderBy{
			{Metric: &analyticsdata.MetricOrderBy{MetricName: "sessions"}, Desc: true},
		},
		Limit: 5,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channels: %w", err)
	}

	channels := make([]domain.ChannelSessions, 0, len(report.Rows))
	for _, row := range report.Rows {
		channels = append(channels, domain.ChannelSessions{
			Channel:  dimensionValue(row, 0),
			Sessions: metricInt(row, 0),
		})
	}
	return channels, nil
}

// DeviceBreakdown returns active users per device category.
func (c *Client) DeviceBreakdown(ctx context.Context, start, end time.Time) ([]domain.DeviceUsers, error) {
	report, err := c.runReport(ctx, &analyticsdata.RunReportRequest{
		DateRanges: []*analyticsdata.DateRange{dateRange(start, end)},
		Dimensions: []*analyticsdata.Dimension{{Name: "deviceCategory"}},
		Metrics:    []*analyticsdata.Metric{{Name: "activeUsers"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch devices: %w", err)
	}

	devices := make([]domain.DeviceUsers, 0, len(report.Rows))
	for _, row := range report.Rows {
		devices = append(devices, domain.DeviceUsers{
			Device: dimensionValue(row, 0),
			Users:  metricInt(row, 0),
		})
	}
	return devices, nil
}

// VisitorSplit returns new vs returning active users.
func (c *Client) VisitorSplit(ctx context.Context, start, end time.Time) (domain.VisitorSplit, error) {
	report, err := c.runReport(ctx, &analyticsdata.RunReportRequest{
		DateRanges: []*analyticsdata.DateRange{dateRange(start, end)},
		Dimensions: []*analyticsdata.Dimension{{Name: "newVsReturning"}},
		Metrics:    []*analyticsdata.Metric{{Name: "activeUsers"}},
	})
	if err != nil {
		return domain.VisitorSplit{}, fmt.Errorf("failed to fetch visitor split: %w", err)
	}

	var split domain.VisitorSplit
	for _, row := range report.Rows {
		switch dimensionValue(row, 0) {
		case "new":
			split.New = metricInt(row, 0)
		case "returning":
			split.Returning = metricInt(row, 0)
		}
	}
	return split, nil
}

// TopSearchQueries returns the five queries with the most clicks from
// Search Console.
func (c *Client) TopSearchQueries(ctx context.Context, start, end time.Time) ([]domain.SearchQuery, error) {
	resp, err := c.search.Searchanalytics.Query(c.siteURL, &searchconsole.SearchAnalyticsQueryRequest{
		StartDate:  start.Format(gaDateFormat),
		EndDate:    end.Format(gaDateFormat),
		Dimensions: []string{"query"},
		RowLimit:   5,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to query search console: %w", err)
	}

	queries := make([]domain.SearchQuery, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		query := ""
		if len(row.Keys) > 0 {
			query = row.Keys[0]
		}
		queries = append(queries, domain.SearchQuery{
			Query:       query,
			Clicks:      int64(row.Clicks),
			Impressions: int64(row.Impressions),
			CTR:         row.Ctr,
			Position:    row.Position,
		})
	}
	return queries, nil
}

func (c *Client) runReport(ctx context.Context, req *analyticsdata.RunReportRequest) (*analyticsdata.RunReportResponse, error) {
	return c.analytics.Properties.RunReport("properties/"+c.propertyID, req).Context(ctx).Do()
}

func dateRange(start, end time.Time) *analyticsdata.DateRange {
	return &analyticsdata.DateRange{
		StartDate: start.Format(gaDateFormat),
		EndDate:   end.Format(gaDateFormat),
	}
}

func dimensionValue(row *analyticsdata.Row, i int) string {
	if i >= len(row.DimensionValues) {
		return ""
	}
	return row.DimensionValues[i].Value
}

func metricInt(row *analyticsdata.Row, i int) int64 {
	if i >= len(row.MetricValues) {
		return 0
	}
	n, err := strconv.ParseInt(row.MetricValues[i].Value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
