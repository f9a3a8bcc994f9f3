package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dorecipe/dorecipe-api/internal/modules/siteanalytics/domain"
)

type mockGoogleClient struct{ mock.Mock }

func (m *mockGoogleClient) Conversions(ctx context.Context, start, end time.Time) ([]domain.EventCount, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventCount), args.Error(1)
}
func (m *mockGoogleClient) TopChannels(ctx context.Context, start, end time.Time) ([]domain.ChannelSessions, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChannelSessions), args.Error(1)
}
func (m *mockGoogleClient) DeviceBreakdown(ctx context.Context, start, end time.Time) ([]domain.DeviceUsers, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeviceUsers), args.Error(1)
}
func (m *mockGoogleClient) VisitorSplit(ctx context.Context, start, end time.Time) (domain.VisitorSplit, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(domain.VisitorSplit), args.Error(1)
}
func (m *mockGoogleClient) TopSearchQueries(ctx context.Context, start, end time.Time) ([]domain.SearchQuery, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SearchQuery), args.Error(1)
}

func stubGoogle() *mockGoogleClient {
	google := new(mockGoogleClient)
	google.On("Conversions", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.EventCount{{Event: "download_click", Count: 42}}, nil)
	google.On("TopChannels", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.ChannelSessions{{Channel: "Organic Search", Sessions: 100}}, nil)
	google.On("DeviceBreakdown", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.DeviceUsers{{Device: "mobile", Users: 80}}, nil)
	google.On("VisitorSplit", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.VisitorSplit{New: 60, Returning: 20}, nil)
	return google
}

func TestDashboardService_Unconfigured(t *testing.T) {
	svc := NewDashboardService(nil, nil)

	payload, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.False(t, payload.Configured)
	assert.NotNil(t, payload.Conversions)
	assert.Empty(t, payload.Conversions)
}

func TestDashboardService_GetDashboard(t *testing.T) {
	google := stubGoogle()
	google.On("TopSearchQueries", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.SearchQuery{{Query: "recipe app", Clicks: 30}}, nil)

	svc := NewDashboardService(google, nil)
	payload, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.True(t, payload.Configured)
	require.Len(t, payload.Conversions, 1)
	assert.Equal(t, int64(42), payload.Conversions[0].Count)
	assert.Equal(t, int64(60), payload.Visitors.New)
	require.Len(t, payload.SearchQueries, 1)
	assert.Equal(t, "recipe app", payload.SearchQueries[0].Query)
}

func TestDashboardService_SearchConsoleFailureTolerated(t *testing.T) {
	google := stubGoogle()
	google.On("TopSearchQueries", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("gsc quota exceeded"))

	svc := NewDashboardService(google, nil)
	payload, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.True(t, payload.Configured)
	assert.NotNil(t, payload.SearchQueries)
	assert.Empty(t, payload.SearchQueries)
	require.Len(t, payload.Conversions, 1)
}

func TestDashboardService_GAFailurePropagates(t *testing.T) {
	google := new(mockGoogleClient)
	google.On("Conversions", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("ga down"))

	svc := NewDashboardService(google, nil)
	_, err := svc.GetDashboard(context.Background())
	assert.Error(t, err)
}
