package domain

import "errors"

var (
	// ErrNotConfigured means one of the App Store Connect secrets is absent.
	// The stats endpoint degrades to a placeholder payload in this case.
	ErrNotConfigured = errors.New("app store connect credentials not configured")

	// ErrReportUnavailable means no report exists for the requested date.
	// Sales reports are sparse: a day with no transactions, or inside the
	// 24-48h publication delay, has no report at all.
	ErrReportUnavailable = errors.New("sales report unavailable")
)
