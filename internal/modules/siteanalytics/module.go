package siteanalytics

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/dorecipe/dorecipe-api/internal/modules/siteanalytics/application"
	"github.com/dorecipe/dorecipe-api/internal/modules/siteanalytics/infrastructure/google"
	"github.com/dorecipe/dorecipe-api/internal/modules/siteanalytics/interfaces/http"
	"github.com/dorecipe/dorecipe-api/internal/shared/infrastructure/config"
)

type Module struct {
	DashboardService *application.DashboardService
	DashboardHandler *http.DashboardHandler
}

// NewModule wires the analytics dashboard. Without Google credentials the
// endpoint still serves an unconfigured payload; cache may be nil.
func NewModule(ctx context.Context, cfg config.Config, cache *redis.Client) (*Module, error) {
	var client application.GoogleClient
	if cfg.Google.Configured() {
		googleClient, err := google.NewClient(ctx, cfg.Google)
		if err != nil {
			return nil, err
		}
		client = googleClient
	} else {
		log.Println("siteanalytics: Google credentials not configured, dashboard will report unconfigured")
	}

	service := application.NewDashboardService(client, cache)
	handler := http.NewDashboardHandler(service)

	return &Module{
		DashboardService: service,
		DashboardHandler: handler,
	}, nil
}
