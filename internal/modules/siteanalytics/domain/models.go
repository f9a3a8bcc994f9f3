package domain

// EventCount is a GA4 conversion event tally over the report window.
type EventCount struct {
	Event string `json:"event"`
	Count int64  `json:"count"`
}

// ChannelSessions is a sessions tally per default channel group.
type ChannelSessions struct {
	Channel  string `json:"channel"`
	Sessions int64  `json:"sessions"`
}

// DeviceUsers is an active-users tally per device category.
type DeviceUsers struct {
	Device string `json:"device"`
	Users  int64  `json:"users"`
}

// VisitorSplit breaks active users into new and returning.
type VisitorSplit struct {
	New       int64 `json:"new"`
	Returning int64 `json:"returning"`
}

// SearchQuery is one Search Console query row.
type SearchQuery struct {
	Query       string  `json:"query"`
	Clicks      int64   `json:"clicks"`
	Impressions int64   `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
}

// DashboardPayload is the assembled marketing analytics dashboard.
type DashboardPayload struct {
	Configured    bool              `json:"configured"`
	Conversions   []EventCount      `json:"conversions"`
	Channels      []ChannelSessions `json:"channels"`
	Devices       []DeviceUsers     `json:"devices"`
	Visitors      VisitorSplit      `json:"visitors"`
	SearchQueries []SearchQuery     `json:"searchQueries"`
}

// EmptyDashboard is returned when Google credentials are not configured,
// so the frontend can render an unconfigured state instead of erroring.
func EmptyDashboard() *DashboardPayload {
	return &DashboardPayload{
		Configured:    false,
		Conversions:   []EventCount{},
		Channels:      []ChannelSessions{},
		Devices:       []DeviceUsers{},
		SearchQueries: []SearchQuery{},
	}
}
