package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dorecipe/dorecipe-api/internal/modules/tracking/domain"
)

type mockEventRepo struct{ mock.Mock }

func (m *mockEventRepo) Insert(ctx context.Context, event *domain.SiteEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *mockEventRepo) CountsByEvent(ctx context.Context, days int) ([]domain.EventCount, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventCount), args.Error(1)
}
func (m *mockEventRepo) CountsByDay(ctx context.Context, days int) ([]domain.DailyEventCount, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyEventCount), args.Error(1)
}

func TestTrackingService_Record(t *testing.T) {
	repo := new(mockEventRepo)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(e *domain.SiteEvent) bool {
		return e.Event == domain.EventDownloadClick && e.Label == "hero"
	})).Return(nil)

	svc := NewTrackingService(repo, nil)
	recorded, err := svc.Record(context.Background(), domain.EventDownloadClick, "hero", "client-1", false)
	require.NoError(t, err)
	assert.True(t, recorded)
}

func TestTrackingService_Record_UnknownEvent(t *testing.T) {
	svc := NewTrackingService(new(mockEventRepo), nil)

	_, err := svc.Record(context.Background(), "page_scroll", "", "client-1", false)
	assert.ErrorIs(t, err, domain.ErrUnknownEvent)
}

func TestTrackingService_Record_OperatorExcluded(t *testing.T) {
	repo := new(mockEventRepo)

	svc := NewTrackingService(repo, nil)
	recorded, err := svc.Record(context.Background(), domain.EventCTAClick, "", "client-1", true)
	require.NoError(t, err)

	// Acknowledged, never stored.
	assert.False(t, recorded)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestTrackingService_Record_ExcludedClient(t *testing.T) {
	repo := new(mockEventRepo)

	svc := NewTrackingService(repo, []string{"office-laptop"})
	recorded, err := svc.Record(context.Background(), domain.EventFeatureView, "", "office-laptop", false)
	require.NoError(t, err)

	assert.False(t, recorded)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestTrackingService_Summary(t *testing.T) {
	repo := new(mockEventRepo)
	repo.On("CountsByEvent", mock.Anything, 30).Return([]domain.EventCount{
		{Event: "download_click", Count: 42},
	}, nil)
	repo.On("CountsByDay", mock.Anything, 30).Return([]domain.DailyEventCount{
		{Date: "2025-06-14", Event: "download_click", Count: 5},
	}, nil)

	svc := NewTrackingService(repo, nil)

	// Out-of-range day values fall back to the 30-day default.
	for _, days := range []int{0, -1, 9999, 30} {
		summary, err := svc.Summary(context.Background(), days)
		require.NoError(t, err)
		assert.Equal(t, 30, summary.Days)
		require.Len(t, summary.Totals, 1)
		assert.Equal(t, 42, summary.Totals[0].Count)
	}
}

func TestTrackingService_Summary_EmptyNeverNil(t *testing.T) {
	repo := new(mockEventRepo)
	repo.On("CountsByEvent", mock.Anything, 30).Return([]domain.EventCount(nil), nil)
	repo.On("CountsByDay", mock.Anything, 30).Return([]domain.DailyEventCount(nil), nil)

	svc := NewTrackingService(repo, nil)
	summary, err := svc.Summary(context.Background(), 30)
	require.NoError(t, err)

	assert.NotNil(t, summary.Totals)
	assert.NotNil(t, summary.ByDay)
}
