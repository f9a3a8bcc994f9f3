package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dorecipe/dorecipe-api/internal/gateway/middleware"
	"github.com/dorecipe/dorecipe-api/internal/modules/tracking/domain"
	"github.com/dorecipe/dorecipe-api/internal/shared/utils"
)

// TrackingService defines the interface for conversion tracking
type TrackingService interface {
	Record(ctx context.Context, event, label, clientID string, operator bool) (bool, error)
	Summary(ctx context.Context, days int) (*domain.TrackingSummary, error)
}

type TrackingHandler struct {
	service TrackingService
}

func NewTrackingHandler(service TrackingService) *TrackingHandler {
	return &TrackingHandler{service: service}
}

type trackRequest struct {
	Event string `json:"event"`
	Label string `json:"label"`
}

// Track ingests a conversion event from the marketing site. Operator
// traffic gets the same 202 so the frontend cannot tell it was dropped.
func (h *TrackingHandler) Track(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	// An admin session on the request marks operator traffic.
	_, operator := r.Context().Value(middleware.ContextKeyAdminEmail).(string)
	clientID := r.Header.Get("X-Client-Id")

	recorded, err := h.service.Record(r.Context(), req.Event, req.Label, clientID, operator)
	if err != nil {
		if err == domain.ErrUnknownEvent {
			utils.WriteError(w, http.StatusBadRequest, "unknown event", nil)
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to record event", err)
		return
	}

	utils.WriteJSON(w, http.StatusAccepted, map[string]bool{"recorded": recorded})
}

// Summary serves the admin conversion counts, default window 30 days.
func (h *TrackingHandler) Summary(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			days = n
		}
	}

	summary, err := h.service.Summary(r.Context(), days)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch tracking summary", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}
