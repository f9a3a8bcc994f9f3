package application

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dorecipe/dorecipe-api/internal/modules/siteanalytics/domain"
)

const (
	dashboardWindowDays = 30
	dashboardCacheKey   = "siteanalytics:dashboard"
	dashboardCacheTTL   = 10 * time.Minute
)

// GoogleClient defines the report shapes the dashboard pulls from Google.
type GoogleClient interface {
	Conversions(ctx context.Context, start, end time.Time) ([]domain.EventCount, error)
	TopChannels(ctx context.Context, start, end time.Time) ([]domain.ChannelSessions, error)
	DeviceBreakdown(ctx context.Context, start, end time.Time) ([]domain.DeviceUsers, error)
	VisitorSplit(ctx context.Context, start, end time.Time) (domain.VisitorSplit, error)
	TopSearchQueries(ctx context.Context, start, end time.Time) ([]domain.SearchQuery, error)
}

// DashboardService assembles the marketing analytics dashboard from GA4
// and Search Console, with a short redis cache in front of the Google
// APIs. Both google and cache may be nil: a nil google client yields the
// unconfigured payload, a nil cache just skips caching.
type DashboardService struct {
	google GoogleClient
	cache  *redis.Client
	now    func() time.Time
}

func NewDashboardService(google GoogleClient, cache *redis.Client) *DashboardService {
	return &DashboardService{
		google: google,
		cache:  cache,
		now:    time.Now,
	}
}

// GetDashboard returns the trailing-30-day dashboard payload.
// Search Console failures degrade to an empty queries section; GA
// failures are returned to the caller.
func (s *DashboardService) GetDashboard(ctx context.Context) (*domain.DashboardPayload, error) {
	if s.google == nil {
		return domain.EmptyDashboard(), nil
	}

	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	end := s.now().UTC()
	start := end.AddDate(0, 0, -dashboardWindowDays)

	conversions, err := s.google.Conversions(ctx, start, end)
	if err != nil {
		return nil, err
	}

	channels, err := s.google.TopChannels(ctx, start, end)
	if err != nil {
		return nil, err
	}

	devices, err := s.google.DeviceBreakdown(ctx, start, end)
	if err != nil {
		return nil, err
	}

	visitors, err := s.google.VisitorSplit(ctx, start, end)
	if err != nil {
		return nil, err
	}

	// Search Console lags and flakes more than GA; serve the dashboard
	// without it rather than failing the whole endpoint.
	queries, err := s.google.TopSearchQueries(ctx, start, end)
	if err != nil {
		log.Printf("siteanalytics: search console unavailable: %v", err)
		queries = []domain.SearchQuery{}
	}

	payload := &domain.DashboardPayload{
		Configured:    true,
		Conversions:   conversions,
		Channels:      channels,
		Devices:       devices,
		Visitors:      visitors,
		SearchQueries: queries,
	}

	s.toCache(ctx, payload)
	return payload, nil
}

func (s *DashboardService) fromCache(ctx context.Context) *domain.DashboardPayload {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("siteanalytics: cache read failed: %v", err)
		}
		return nil
	}

	var payload domain.DashboardPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Printf("siteanalytics: dropping malformed cache entry: %v", err)
		return nil
	}
	return &payload
}

func (s *DashboardService) toCache(ctx context.Context, payload *domain.DashboardPayload) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, dashboardCacheKey, data, dashboardCacheTTL).Err(); err != nil {
		log.Printf("siteanalytics: cache write failed: %v", err)
	}
}
