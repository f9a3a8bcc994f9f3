package application

import (
	"context"
	"log"
	"time"

	"github.com/dorecipe/dorecipe-api/internal/modules/appstore/domain"
	"github.com/dorecipe/dorecipe-api/internal/shared/infrastructure/config"
	"github.com/shopspring/decimal"
)

// SalesReportClient is the App Store Connect surface the aggregator needs.
type SalesReportClient interface {
	DailySales(ctx context.Context, date time.Time) ([]domain.SalesRow, error)
	AppInfo(ctx context.Context) (*domain.AppInfo, error)
	CustomerReviews(ctx context.Context, limit int) ([]domain.Review, error)
}

// SubscriptionMetricsClient is the secondary revenue source.
type SubscriptionMetricsClient interface {
	Overview(ctx context.Context, start, end time.Time) (*domain.SubscriptionMetrics, error)
}

const (
	// Reports lag publication by 24-48 hours, so the loop starts two days back.
	reportDelayDays  = 2
	reportWindowDays = 30
	recentWindowDays = 7

	reviewPageSize = 50

	// The all-time totals are maintained by hand; nag when they go stale.
	allTimeStaleAfter = 45 * 24 * time.Hour
)

// subscriptionStart is the app's launch date, the fixed lower bound for the
// subscription metrics query.
var subscriptionStart = time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

// StatsService aggregates daily sales reports into rolling download and
// revenue windows and merges in subscription metrics plus the hand-maintained
// all-time totals.
type StatsService struct {
	sales SalesReportClient
	subs  SubscriptionMetricsClient
	cfg   config.AppStoreConfig
	now   func() time.Time
}

// NewStatsService creates the stats aggregator.
func NewStatsService(sales SalesReportClient, subs SubscriptionMetricsClient, cfg config.AppStoreConfig) *StatsService {
	return &StatsService{
		sales: sales,
		subs:  subs,
		cfg:   cfg,
		now:   time.Now,
	}
}

// Configured reports whether the App Store Connect secrets are present.
func (s *StatsService) Configured() bool {
	return s.cfg.Configured()
}

// GetStats runs the full aggregation pipeline. Per-day report gaps and
// subscription metrics failures degrade the result; anything else is
// surfaced to the caller.
func (s *StatsService) GetStats(ctx context.Context) (*domain.AppStoreStats, []domain.Review, error) {
	s.warnIfStale()

	windows, err := s.fetchWindows(ctx)
	if err != nil {
		return nil, nil, err
	}

	appInfo, err := s.sales.AppInfo(ctx)
	if err != nil {
		return nil, nil, err
	}

	reviews, err := s.sales.CustomerReviews(ctx, reviewPageSize)
	if err != nil {
		log.Printf("appstore: failed to fetch reviews: %v", err)
		reviews = nil
	}

	subs := s.fetchSubscriptions(ctx)

	stats := s.assemble(windows, appInfo, reviews, subs)
	return stats, reviews, nil
}

// fetchWindows walks the report range one day at a time. A failed day is
// logged and skipped: report gaps are an expected condition, not an error.
// Context cancellation stops the loop between days.
func (s *StatsService) fetchWindows(ctx context.Context) (*domain.WindowTotals, error) {
	windows := &domain.WindowTotals{}

	for daysAgo := reportDelayDays; daysAgo < reportDelayDays+reportWindowDays; daysAgo++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		date := s.now().AddDate(0, 0, -daysAgo)
		rows, err := s.sales.DailySales(ctx, date)
		if err != nil {
			log.Printf("appstore: no report for %s: %v", date.Format("2006-01-02"), err)
			continue
		}

		var day domain.DayTotals
		for _, row := range rows {
			day.Add(row)
		}

		windows.Last30Days.Units += day.Units
		windows.Last30Days.Revenue = windows.Last30Days.Revenue.Add(day.Revenue)

		if daysAgo < reportDelayDays+recentWindowDays {
			windows.Last7Days.Units += day.Units
			windows.Last7Days.Revenue = windows.Last7Days.Revenue.Add(day.Revenue)
		}
	}

	return windows, nil
}

// fetchSubscriptions queries the secondary revenue source. Failure here must
// not block the primary stats: the fields come back zeroed instead.
func (s *StatsService) fetchSubscriptions(ctx context.Context) *domain.SubscriptionMetrics {
	if s.subs == nil {
		return &domain.SubscriptionMetrics{}
	}

	metrics, err := s.subs.Overview(ctx, subscriptionStart, s.now())
	if err != nil {
		log.Printf("appstore: subscription metrics unavailable: %v", err)
		return &domain.SubscriptionMetrics{}
	}
	return metrics
}

func (s *StatsService) assemble(windows *domain.WindowTotals, appInfo *domain.AppInfo, reviews []domain.Review, subs *domain.SubscriptionMetrics) *domain.AppStoreStats {
	appRevenue30 := windows.Last30Days.Revenue
	subRevenue := decimal.NewFromFloat(subs.Revenue)

	totalRevenue := s.cfg.AllTimeRevenue.Add(subRevenue)

	stats := domain.EmptyStats()

	stats.Downloads = domain.Downloads{
		Total:      s.cfg.AllTimeDownloads,
		Last7Days:  windows.Last7Days.Units,
		Last30Days: windows.Last30Days.Units,
	}
	stats.Revenue = domain.Revenue{
		Total:        totalRevenue.InexactFloat64(),
		Last7Days:    windows.Last7Days.Revenue.InexactFloat64(),
		Last30Days:   appRevenue30.Add(subRevenue).InexactFloat64(),
		App:          appRevenue30.InexactFloat64(),
		Subscription: subs.Revenue,
	}
	stats.Subscriptions = domain.Subscriptions{
		Active: subs.ActiveSubscriptions,
		MRR:    subs.MRR,
	}
	stats.Ratings = ratingsFromReviews(reviews)
	if appInfo.VersionString != "" {
		stats.Updates.CurrentVersion = appInfo.VersionString
	}

	return &stats
}

// ratingsFromReviews derives an approximate rating summary from the most
// recent reviews page. Connect exposes no aggregate ratings endpoint for
// this API key scope, so the latest page stands in.
func ratingsFromReviews(reviews []domain.Review) domain.Ratings {
	ratings := domain.Ratings{Count: len(reviews)}
	if len(reviews) == 0 {
		return ratings
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
		switch r.Rating {
		case 1:
			ratings.Distribution.OneStar++
		case 2:
			ratings.Distribution.TwoStar++
		case 3:
			ratings.Distribution.ThreeStar++
		case 4:
			ratings.Distribution.FourStar++
		case 5:
			ratings.Distribution.FiveStar++
		}
	}

	ratings.Average = float64(sum) / float64(len(reviews))
	return ratings
}

func (s *StatsService) warnIfStale() {
	if s.cfg.AllTimeRefreshedAt.IsZero() {
		return
	}
	if s.now().Sub(s.cfg.AllTimeRefreshedAt) > allTimeStaleAfter {
		log.Printf("appstore: all-time totals last refreshed %s; update APPSTORE_ALLTIME_* values",
			s.cfg.AllTimeRefreshedAt.Format("2006-01-02"))
	}
}
