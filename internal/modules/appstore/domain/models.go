package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product type identifiers from the sales summary report. "1x" codes are
// first-time app purchases; "7x" codes are redownloads and updates; "IA" codes
// are in-app purchases. Only first-time purchases count as downloads, but
// every code contributes proceeds.
var newPurchaseCodes = map[string]bool{
	"1": true, "1F": true, "1T": true, "1E": true, "1EP": true, "1EU": true,
}

// SalesRow is one tab-separated row of a daily sales summary report,
// already filtered to the tracked product.
type SalesRow struct {
	SKU           string
	ProductTypeID string
	Units         int
	Proceeds      decimal.Decimal
}

// IsNewPurchase reports whether the row represents a first-time app purchase.
func (r SalesRow) IsNewPurchase() bool {
	return newPurchaseCodes[r.ProductTypeID]
}

// DayTotals accumulates one report day's units and proceeds.
type DayTotals struct {
	Units   int
	Revenue decimal.Decimal
}

// Add folds a filtered row into the day's totals.
func (d *DayTotals) Add(row SalesRow) {
	if row.IsNewPurchase() {
		d.Units += row.Units
	}
	d.Revenue = d.Revenue.Add(row.Proceeds)
}

// WindowTotals accumulates rolling 7 and 30 day windows. The 7-day window's
// days are a subset of the 30-day window's, summed independently.
type WindowTotals struct {
	Last7Days  DayTotals
	Last30Days DayTotals
}

// AppInfo is the subset of the App Store Connect app resource we use.
type AppInfo struct {
	Name          string
	VersionString string
}

// Review is a customer review from App Store Connect.
type Review struct {
	ID          string    `json:"id"`
	Rating      int       `json:"rating"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Reviewer    string    `json:"reviewer"`
	Territory   string    `json:"territory"`
	CreatedDate time.Time `json:"createdDate"`
}

// SubscriptionMetrics is the overview returned by the subscription
// metrics API.
type SubscriptionMetrics struct {
	ActiveSubscriptions int
	MRR                 float64
	Revenue             float64
}

// Downloads is the download section of the stats payload.
type Downloads struct {
	Total      int `json:"total"`
	Today      int `json:"today"`
	Last7Days  int `json:"last7Days"`
	Last30Days int `json:"last30Days"`
}

// Revenue is the revenue section of the stats payload. App is Apple-reported
// product revenue for the 30-day window; Subscription is the subscription
// metrics API's figure. The two sources are summed without reconciliation.
type Revenue struct {
	Total        float64 `json:"total"`
	Today        float64 `json:"today"`
	Last7Days    float64 `json:"last7Days"`
	Last30Days   float64 `json:"last30Days"`
	App          float64 `json:"app"`
	Subscription float64 `json:"subscription"`
}

type Subscriptions struct {
	Active int     `json:"active"`
	MRR    float64 `json:"mrr"`
}

type RatingsDistribution struct {
	OneStar   int `json:"oneStar"`
	TwoStar   int `json:"twoStar"`
	ThreeStar int `json:"threeStar"`
	FourStar  int `json:"fourStar"`
	FiveStar  int `json:"fiveStar"`
}

type Ratings struct {
	Average      float64             `json:"average"`
	Count        int                 `json:"count"`
	Distribution RatingsDistribution `json:"distribution"`
}

type Updates struct {
	CurrentVersion string  `json:"currentVersion"`
	AdoptionRate   float64 `json:"adoptionRate"`
}

type Crashes struct {
	Count         int     `json:"count"`
	CrashFreeRate float64 `json:"crashFreeRate"`
}

// AppStoreStats is the full stats payload. It is constructed fresh on every
// request and never persisted.
type AppStoreStats struct {
	Downloads     Downloads     `json:"downloads"`
	Revenue       Revenue       `json:"revenue"`
	Subscriptions Subscriptions `json:"subscriptions"`
	Ratings       Ratings       `json:"ratings"`
	Updates       Updates       `json:"updates"`
	Crashes       Crashes       `json:"crashes"`
}

// EmptyStats is the placeholder payload used when credentials are absent.
func EmptyStats() AppStoreStats {
	return AppStoreStats{
		Updates: Updates{CurrentVersion: "N/A"},
		Crashes: Crashes{CrashFreeRate: 100},
	}
}
