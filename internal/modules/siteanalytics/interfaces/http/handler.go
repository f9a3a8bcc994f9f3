package http

import (
	"context"
	"net/http"

	"github.com/dorecipe/dorecipe-api/internal/modules/siteanalytics/domain"
	"github.com/dorecipe/dorecipe-api/internal/shared/utils"
)

// DashboardService defines the interface for the analytics dashboard
type DashboardService interface {
	GetDashboard(ctx context.Context) (*domain.DashboardPayload, error)
}

type DashboardHandler struct {
	service DashboardService
}

func NewDashboardHandler(service DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetDashboard serves the admin marketing analytics dashboard.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	payload, err := h.service.GetDashboard(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch analytics", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, payload)
}
