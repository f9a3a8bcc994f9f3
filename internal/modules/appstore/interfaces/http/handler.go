package http

import (
	"context"
	"net/http"

	"github.com/dorecipe/dorecipe-api/internal/modules/appstore/domain"
	"github.com/dorecipe/dorecipe-api/internal/shared/utils"
)

// StatsService is the aggregation pipeline behind the stats endpoint.
type StatsService interface {
	Configured() bool
	GetStats(ctx context.Context) (*domain.AppStoreStats, []domain.Review, error)
}

// StatsResponse is the dashboard payload. Configured is false when the App
// Store Connect secrets are absent, in which case Stats is all zeroes.
type StatsResponse struct {
	Configured bool                 `json:"configured"`
	Message    string               `json:"message,omitempty"`
	Stats      domain.AppStoreStats `json:"stats"`
	Reviews    []domain.Review      `json:"reviews"`
}

type StatsHandler struct {
	service StatsService
}

func NewStatsHandler(service StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetStats serves the admin dashboard's App Store section. Missing
// credentials degrade to a flagged placeholder rather than an error; any
// unexpected pipeline failure is a 500 with no partial data.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if !h.service.Configured() {
		utils.WriteJSON(w, http.StatusOK, StatsResponse{
			Configured: false,
			Message:    "App Store Connect API credentials not configured",
			Stats:      domain.EmptyStats(),
			Reviews:    []domain.Review{},
		})
		return
	}

	stats, reviews, err := h.service.GetStats(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch App Store data", err)
		return
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}

	utils.WriteJSON(w, http.StatusOK, StatsResponse{
		Configured: true,
		Stats:      *stats,
		Reviews:    reviews,
	})
}
