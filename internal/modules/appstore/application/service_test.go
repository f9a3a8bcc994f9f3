package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dorecipe/dorecipe-api/internal/modules/appstore/domain"
	"github.com/dorecipe/dorecipe-api/internal/shared/infrastructure/config"
)

type mockSalesClient struct{ mock.Mock }

func (m *mockSalesClient) DailySales(ctx context.Context, date time.Time) ([]domain.SalesRow, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesRow), args.Error(1)
}
func (m *mockSalesClient) AppInfo(ctx context.Context) (*domain.AppInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppInfo), args.Error(1)
}
func (m *mockSalesClient) CustomerReviews(ctx context.Context, limit int) ([]domain.Review, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

type mockSubsClient struct{ mock.Mock }

func (m *mockSubsClient) Overview(ctx context.Context, start, end time.Time) (*domain.SubscriptionMetrics, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubscriptionMetrics), args.Error(1)
}

var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func testConfig() config.AppStoreConfig {
	return config.AppStoreConfig{
		IssuerID:         "issuer",
		KeyID:            "key",
		PrivateKey:       "pem",
		AllTimeDownloads: 5000,
		AllTimeRevenue:   decimal.NewFromInt(1000),
	}
}

// dayRows is a report day with one new purchase (2 units, 3.50) and one
// in-app purchase (no download units, 1.00 proceeds).
func dayRows() []domain.SalesRow {
	return []domain.SalesRow{
		{SKU: "com.dorecipe.app", ProductTypeID: "1", Units: 2, Proceeds: decimal.RequireFromString("3.50")},
		{SKU: "com.dorecipe.app", ProductTypeID: "IA1", Units: 0, Proceeds: decimal.RequireFromString("1.00")},
	}
}

func newTestService(sales SalesReportClient, subs SubscriptionMetricsClient) *StatsService {
	svc := NewStatsService(sales, subs, testConfig())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestStatsService_GetStats(t *testing.T) {
	sales := new(mockSalesClient)
	subs := new(mockSubsClient)

	sales.On("DailySales", mock.Anything, mock.Anything).Return(dayRows(), nil)
	sales.On("AppInfo", mock.Anything).Return(&domain.AppInfo{Name: "DoRecipe", VersionString: "1.4.0"}, nil)
	sales.On("CustomerReviews", mock.Anything, 50).Return([]domain.Review{
		{ID: "r1", Rating: 5},
		{ID: "r2", Rating: 4},
	}, nil)
	subs.On("Overview", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.SubscriptionMetrics{ActiveSubscriptions: 12, MRR: 29.99, Revenue: 100}, nil)

	svc := newTestService(sales, subs)
	stats, reviews, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	// Every day contributes 2 download units and 4.50 revenue.
	assert.Equal(t, 5000, stats.Downloads.Total)
	assert.Equal(t, 0, stats.Downloads.Today)
	assert.Equal(t, 14, stats.Downloads.Last7Days)
	assert.Equal(t, 60, stats.Downloads.Last30Days)

	assert.InDelta(t, 1100.0, stats.Revenue.Total, 0.001)
	assert.InDelta(t, 31.5, stats.Revenue.Last7Days, 0.001)
	assert.InDelta(t, 235.0, stats.Revenue.Last30Days, 0.001)
	assert.InDelta(t, 135.0, stats.Revenue.App, 0.001)
	assert.InDelta(t, 100.0, stats.Revenue.Subscription, 0.001)

	assert.Equal(t, 12, stats.Subscriptions.Active)
	assert.InDelta(t, 29.99, stats.Subscriptions.MRR, 0.001)

	assert.Equal(t, 2, stats.Ratings.Count)
	assert.InDelta(t, 4.5, stats.Ratings.Average, 0.001)
	assert.Equal(t, 1, stats.Ratings.Distribution.FiveStar)
	assert.Equal(t, 1, stats.Ratings.Distribution.FourStar)

	assert.Equal(t, "1.4.0", stats.Updates.CurrentVersion)
	sales.AssertNumberOfCalls(t, "DailySales", 30)
}

func TestStatsService_GetStats_MissingDaysSkipped(t *testing.T) {
	sales := new(mockSalesClient)

	// Day 5 back has no published report; the rest of the window still counts.
	failDate := fixedNow.AddDate(0, 0, -5)
	sales.On("DailySales", mock.Anything, mock.MatchedBy(func(d time.Time) bool {
		return d.Equal(failDate)
	})).Return(nil, domain.ErrReportUnavailable)
	sales.On("DailySales", mock.Anything, mock.Anything).Return(dayRows(), nil)
	sales.On("AppInfo", mock.Anything).Return(&domain.AppInfo{VersionString: "1.4.0"}, nil)
	sales.On("CustomerReviews", mock.Anything, 50).Return([]domain.Review{}, nil)

	svc := newTestService(sales, nil)
	stats, _, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, stats.Downloads.Last7Days)
	assert.Equal(t, 58, stats.Downloads.Last30Days)
	assert.InDelta(t, 27.0, stats.Revenue.Last7Days, 0.001)
	assert.InDelta(t, 130.5, stats.Revenue.Last30Days, 0.001)
}

func TestStatsService_GetStats_RecentWindowIsSubset(t *testing.T) {
	sales := new(mockSalesClient)
	sales.On("DailySales", mock.Anything, mock.Anything).Return(dayRows(), nil)
	sales.On("AppInfo", mock.Anything).Return(&domain.AppInfo{}, nil)
	sales.On("CustomerReviews", mock.Anything, 50).Return([]domain.Review{}, nil)

	svc := newTestService(sales, nil)
	stats, _, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.LessOrEqual(t, stats.Downloads.Last7Days, stats.Downloads.Last30Days)
	assert.LessOrEqual(t, stats.Revenue.Last7Days, stats.Revenue.Last30Days)
}

func TestStatsService_GetStats_AppInfoFailure(t *testing.T) {
	sales := new(mockSalesClient)
	sales.On("DailySales", mock.Anything, mock.Anything).Return(dayRows(), nil)
	sales.On("AppInfo", mock.Anything).Return(nil, errors.New("connect down"))

	svc := newTestService(sales, nil)
	_, _, err := svc.GetStats(context.Background())
	assert.Error(t, err)
}

func TestStatsService_GetStats_ReviewFailureTolerated(t *testing.T) {
	sales := new(mockSalesClient)
	sales.On("DailySales", mock.Anything, mock.Anything).Return(dayRows(), nil)
	sales.On("AppInfo", mock.Anything).Return(&domain.AppInfo{VersionString: "1.4.0"}, nil)
	sales.On("CustomerReviews", mock.Anything, 50).Return(nil, errors.New("reviews down"))

	svc := newTestService(sales, nil)
	stats, reviews, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Nil(t, reviews)
	assert.Equal(t, 0, stats.Ratings.Count)
	assert.Equal(t, "1.4.0", stats.Updates.CurrentVersion)
}

func TestStatsService_GetStats_SubscriptionFailureTolerated(t *testing.T) {
	sales := new(mockSalesClient)
	subs := new(mockSubsClient)

	sales.On("DailySales", mock.Anything, mock.Anything).Return(dayRows(), nil)
	sales.On("AppInfo", mock.Anything).Return(&domain.AppInfo{}, nil)
	sales.On("CustomerReviews", mock.Anything, 50).Return([]domain.Review{}, nil)
	subs.On("Overview", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("rate limited"))

	svc := newTestService(sales, subs)
	stats, _, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Subscriptions.Active)
	assert.InDelta(t, 0.0, stats.Revenue.Subscription, 0.001)
	assert.InDelta(t, 1000.0, stats.Revenue.Total, 0.001)
}

func TestStatsService_GetStats_NoSubscriptionClient(t *testing.T) {
	sales := new(mockSalesClient)
	sales.On("DailySales", mock.Anything, mock.Anything).Return(dayRows(), nil)
	sales.On("AppInfo", mock.Anything).Return(&domain.AppInfo{}, nil)
	sales.On("CustomerReviews", mock.Anything, 50).Return([]domain.Review{}, nil)

	svc := newTestService(sales, nil)
	stats, _, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Subscriptions.Active)
	assert.InDelta(t, 0.0, stats.Subscriptions.MRR, 0.001)
}

func TestStatsService_GetStats_ContextCancelled(t *testing.T) {
	sales := new(mockSalesClient)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newTestService(sales, nil)
	_, _, err := svc.GetStats(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	sales.AssertNotCalled(t, "DailySales", mock.Anything, mock.Anything)
}

func TestStatsService_Configured(t *testing.T) {
	svc := newTestService(new(mockSalesClient), nil)
	assert.True(t, svc.Configured())

	unconfigured := NewStatsService(nil, nil, config.AppStoreConfig{})
	assert.False(t, unconfigured.Configured())
}
