package appstore

import (
	"github.com/dorecipe/dorecipe-api/internal/modules/appstore/application"
	"github.com/dorecipe/dorecipe-api/internal/modules/appstore/infrastructure/connect"
	"github.com/dorecipe/dorecipe-api/internal/modules/appstore/infrastructure/revenuecat"
	"github.com/dorecipe/dorecipe-api/internal/modules/appstore/interfaces/http"
	"github.com/dorecipe/dorecipe-api/internal/shared/infrastructure/config"
)

type Module struct {
	StatsService *application.StatsService
	StatsHandler *http.StatsHandler
}

func NewModule(cfg config.Config) *Module {
	var sales application.SalesReportClient
	var subs application.SubscriptionMetricsClient

	// The private key is parsed lazily, so a present-but-broken key still
	// builds the module and surfaces per request as a 500.
	if tokens, err := connect.NewTokenSource(cfg.AppStore.IssuerID, cfg.AppStore.KeyID, cfg.AppStore.PrivateKey); err == nil {
		sales = connect.NewClient(tokens, cfg.AppStore.VendorNumber, cfg.AppStore.AppID, cfg.AppStore.ProductSKU)
	}

	if cfg.RevenueCat.APIKey != "" {
		subs = revenuecat.NewClient(cfg.RevenueCat.APIKey, cfg.RevenueCat.ProjectID)
	}

	service := application.NewStatsService(sales, subs, cfg.AppStore)
	handler := http.NewStatsHandler(service)

	return &Module{
		StatsService: service,
		StatsHandler: handler,
	}
}
