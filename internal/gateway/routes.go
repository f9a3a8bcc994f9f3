package gateway

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dorecipe/dorecipe-api/internal/gateway/middleware"
	appstore_http "github.com/dorecipe/dorecipe-api/internal/modules/appstore/interfaces/http"
	auth_http "github.com/dorecipe/dorecipe-api/internal/modules/auth/interfaces/http"
	blog_http "github.com/dorecipe/dorecipe-api/internal/modules/blog/interfaces/http"
	filestorage_http "github.com/dorecipe/dorecipe-api/internal/modules/filestorage/interfaces/http"
	siteanalytics_http "github.com/dorecipe/dorecipe-api/internal/modules/siteanalytics/interfaces/http"
	tracking_http "github.com/dorecipe/dorecipe-api/internal/modules/tracking/interfaces/http"
)

// RouterConfig holds all the handlers and middleware needed for routing
type RouterConfig struct {
	AuthHandler      *auth_http.AuthHandler
	AuthMiddleware   *middleware.AuthMiddleware
	StatsHandler     *appstore_http.StatsHandler
	DashboardHandler *siteanalytics_http.DashboardHandler
	BlogHandler      *blog_http.BlogHandler
	MediaHandler     *filestorage_http.MediaHandler
	TrackingHandler  *tracking_http.TrackingHandler
}

// SetupRoutes creates and configures all application routes
func SetupRoutes(config RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	// Health Check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus Metrics Endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Auth Routes
	mux.HandleFunc("POST /api/auth/login", config.AuthHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", config.AuthHandler.Logout)
	mux.Handle("GET /api/auth/me", config.AuthMiddleware.RequireAdmin(http.HandlerFunc(config.AuthHandler.Me)))

	// Public Blog Routes
	mux.HandleFunc("GET /api/blog", config.BlogHandler.ListPublished)
	mux.HandleFunc("GET /api/blog/{slug}", config.BlogHandler.GetBySlug)

	// Conversion Tracking (operator sessions are detected, never recorded)
	mux.Handle("POST /api/track", config.AuthMiddleware.FlexibleAuth(http.HandlerFunc(config.TrackingHandler.Track)))

	// Admin Dashboard Routes
	mux.Handle("GET /api/admin/appstore", config.AuthMiddleware.RequireAdmin(http.HandlerFunc(config.StatsHandler.GetStats)))
	mux.Handle("GET /api/admin/analytics", config.AuthMiddleware.RequireAdmin(http.HandlerFunc(config.DashboardHandler.GetDashboard)))
	mux.Handle("GET /api/admin/tracking", config.AuthMiddleware.RequireAdmin(http.HandlerFunc(config.TrackingHandler.Summary)))

	// Admin Blog Routes
	mux.Handle("GET /api/admin/blog", config.AuthMiddleware.RequireAdmin(http.HandlerFunc(config.BlogHandler.ListAll)))
	mux.Handle("POST /api/admin/blog", config.AuthMiddleware.RequireAdmin(http.HandlerFunc(config.BlogHandler.Create)))
	mux.Handle("GET /api/admin/blog/{id}", config.AuthMiddleware.RequireAdmin(http.HandlerFunc(config.BlogHandler.Get)))
	mux.Handle("PATCH /api/admin/blog/{id}", config.AuthMiddleware.RequireAdmin(http.HandlerFunc(config.BlogHandler.Update)))
	mux.Handle("DELETE /api/admin/blog/{id}", config.AuthMiddleware.RequireAdmin(http.HandlerFunc(config.BlogHandler.Delete)))
	mux.Handle("POST /api/admin/blog/media", config.AuthMiddleware.RequireAdmin(http.HandlerFunc(config.MediaHandler.Upload)))

	return mux
}
