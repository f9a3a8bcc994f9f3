package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dorecipe/dorecipe-api/internal/gateway/middleware"
	"github.com/dorecipe/dorecipe-api/internal/modules/auth/application"
	"github.com/dorecipe/dorecipe-api/internal/modules/auth/domain"
	"github.com/dorecipe/dorecipe-api/internal/shared/utils"
)

// AuthService defines the interface for auth operations
type AuthService interface {
	Login(ctx context.Context, req application.LoginRequest) (string, error)
	Identity() *domain.Admin
	SessionExpiry() time.Duration
}

type AuthHandler struct {
	service AuthService
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req application.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		if err == domain.ErrNotConfigured {
			utils.WriteError(w, http.StatusServiceUnavailable, "admin login not configured", nil)
			return
		}
		utils.WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.service.SessionExpiry().Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if _, ok := r.Context().Value(middleware.ContextKeyAdminEmail).(string); !ok {
		utils.WriteError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.service.Identity())
}
