package tracking

import (
	"github.com/jmoiron/sqlx"

	"github.com/dorecipe/dorecipe-api/internal/modules/tracking/application"
	"github.com/dorecipe/dorecipe-api/internal/modules/tracking/infrastructure/persistence/postgres"
	"github.com/dorecipe/dorecipe-api/internal/modules/tracking/interfaces/http"
	"github.com/dorecipe/dorecipe-api/internal/shared/infrastructure/config"
)

type Module struct {
	TrackingService *application.TrackingService
	TrackingHandler *http.TrackingHandler
}

func NewModule(db *sqlx.DB, cfg config.Config) *Module {
	repo := postgres.NewPgEventRepository(db)
	service := application.NewTrackingService(repo, cfg.Tracking.ExcludedClients)
	handler := http.NewTrackingHandler(service)

	return &Module{
		TrackingService: service,
		TrackingHandler: handler,
	}
}
