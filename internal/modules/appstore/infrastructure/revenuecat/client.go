package revenuecat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dorecipe/dorecipe-api/internal/modules/appstore/domain"
)

const defaultBaseURL = "https://api.revenuecat.com/v2"
const requestTimeout = 5 * time.Second

// Client fetches subscription overview metrics from RevenueCat.
// This is a secondary data source: callers treat failures as non-fatal.
type Client struct {
	apiKey     string
	projectID  string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a RevenueCat client. projectID may be empty, in which
// case the first project on the account is resolved on first use.
func NewClient(apiKey, projectID string) *Client {
	return &Client{
		apiKey:     apiKey,
		projectID:  projectID,
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    defaultBaseURL,
	}
}

// Overview returns active subscription count, MRR, and revenue for the
// period from start through end.
func (c *Client) Overview(ctx context.Context, start, end time.Time) (*domain.SubscriptionMetrics, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("revenuecat api key not configured")
	}

	projectID, err := c.resolveProject(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("start_date", start.Format("2006-01-02"))
	params.Set("end_date", end.Format("2006-01-02"))

	var payload struct {
		Metrics []struct {
			ID    string  `json:"id"`
			Value float64 `json:"value"`
		} `json:"metrics"`
	}

	path := "/projects/" + projectID + "/metrics/overview?" + params.Encode()
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, err
	}

	metrics := &domain.SubscriptionMetrics{}
	for _, m := range payload.Metrics {
		switch m.ID {
		case "active_subscriptions":
			metrics.ActiveSubscriptions = int(m.Value)
		case "mrr":
			metrics.MRR = m.Value
		case "revenue":
			metrics.Revenue = m.Value
		}
	}

	return metrics, nil
}

func (c *Client) resolveProject(ctx context.Context) (string, error) {
	if c.projectID != "" {
		return c.projectID, nil
	}

	var payload struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}

	if err := c.getJSON(ctx, "/projects", &payload); err != nil {
		return "", err
	}
	if len(payload.Items) == 0 {
		return "", fmt.Errorf("no revenuecat projects found")
	}

	c.projectID = payload.Items[0].ID
	return c.projectID, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("revenuecat returned status %d for %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
