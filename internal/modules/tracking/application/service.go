package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dorecipe/dorecipe-api/internal/modules/tracking/domain"
)

const (
	defaultSummaryDays = 30
	maxSummaryDays     = 365
)

// TrackingService records first-party conversion events and serves the
// admin summary. Operator traffic (logged-in admins and explicitly
// excluded client ids) is acknowledged but never recorded, so dashboard
// numbers only count real visitors.
type TrackingService struct {
	repo     domain.EventRepository
	excluded map[string]struct{}
	now      func() time.Time
}

func NewTrackingService(repo domain.EventRepository, excludedClients []string) *TrackingService {
	excluded := make(map[string]struct{}, len(excludedClients))
	for _, id := range excludedClients {
		excluded[id] = struct{}{}
	}
	return &TrackingService{
		repo:     repo,
		excluded: excluded,
		now:      time.Now,
	}
}

// Record stores an event unless the sender is an operator. It returns
// whether the event was actually recorded.
func (s *TrackingService) Record(ctx context.Context, event, label, clientID string, operator bool) (bool, error) {
	if !domain.IsAllowedEvent(event) {
		return false, domain.ErrUnknownEvent
	}

	if operator {
		return false, nil
	}
	if _, ok := s.excluded[clientID]; ok {
		return false, nil
	}

	err := s.repo.Insert(ctx, &domain.SiteEvent{
		ID:        uuid.New(),
		Event:     event,
		Label:     label,
		ClientID:  clientID,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Summary returns event counts over the trailing window. Days outside
// [1, 365] fall back to the 30-day default.
func (s *TrackingService) Summary(ctx context.Context, days int) (*domain.TrackingSummary, error) {
	if days <= 0 || days > maxSummaryDays {
		days = defaultSummaryDays
	}

	totals, err := s.repo.CountsByEvent(ctx, days)
	if err != nil {
		return nil, err
	}

	byDay, err := s.repo.CountsByDay(ctx, days)
	if err != nil {
		return nil, err
	}

	if totals == nil {
		totals = []domain.EventCount{}
	}
	if byDay == nil {
		byDay = []domain.DailyEventCount{}
	}

	return &domain.TrackingSummary{
		Days:   days,
		Totals: totals,
		ByDay:  byDay,
	}, nil
}
