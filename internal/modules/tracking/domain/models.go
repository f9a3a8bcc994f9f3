package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Conversion events the marketing site is allowed to report.
const (
	EventDownloadClick = "download_click"
	EventFeatureView   = "feature_view"
	EventCTAClick      = "cta_click"
)

var allowedEvents = map[string]struct{}{
	EventDownloadClick: {},
	EventFeatureView:   {},
	EventCTAClick:      {},
}

// IsAllowedEvent reports whether the event name is one we record.
func IsAllowedEvent(event string) bool {
	_, ok := allowedEvents[event]
	return ok
}

var ErrUnknownEvent = errors.New("unknown tracking event")

// SiteEvent is one recorded conversion event.
type SiteEvent struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Event     string    `json:"event" db:"event"`
	Label     string    `json:"label,omitempty" db:"label"`
	ClientID  string    `json:"-" db:"client_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// EventCount is a per-event total over the summary window.
type EventCount struct {
	Event string `json:"event" db:"event"`
	Count int    `json:"count" db:"count"`
}

// DailyEventCount is a per-day, per-event total.
type DailyEventCount struct {
	Date  string `json:"date" db:"date"`
	Event string `json:"event" db:"event"`
	Count int    `json:"count" db:"count"`
}

// TrackingSummary is the admin view of recorded conversions.
type TrackingSummary struct {
	Days   int               `json:"days"`
	Totals []EventCount      `json:"totals"`
	ByDay  []DailyEventCount `json:"by_day"`
}

// EventRepository defines the contract for event persistence
type EventRepository interface {
	Insert(ctx context.Context, event *SiteEvent) error
	CountsByEvent(ctx context.Context, days int) ([]EventCount, error)
	CountsByDay(ctx context.Context, days int) ([]DailyEventCount, error)
}
