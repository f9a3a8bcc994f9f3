package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/dorecipe/dorecipe-api/internal/gateway"
	"github.com/dorecipe/dorecipe-api/internal/gateway/middleware"
	"github.com/dorecipe/dorecipe-api/internal/modules/appstore"
	"github.com/dorecipe/dorecipe-api/internal/modules/auth"
	"github.com/dorecipe/dorecipe-api/internal/modules/blog"
	"github.com/dorecipe/dorecipe-api/internal/modules/filestorage"
	"github.com/dorecipe/dorecipe-api/internal/modules/siteanalytics"
	"github.com/dorecipe/dorecipe-api/internal/modules/tracking"
	"github.com/dorecipe/dorecipe-api/internal/shared/infrastructure/config"
	"github.com/dorecipe/dorecipe-api/internal/shared/infrastructure/database"
	"github.com/dorecipe/dorecipe-api/pkg/migration"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := config.Load()
	ctx := context.Background()

	log.Println("Connecting to DB...")
	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.Close()
	log.Println("Database Connected Successfully!")

	if err := migration.AutoMigrate(cfg.Database.URL(), "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis only backs the analytics dashboard cache; run without it if down.
	redisClient, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, dashboard caching disabled: %v", err)
		redisClient = nil
	}

	authModule := auth.NewModule(cfg)
	appstoreModule := appstore.NewModule(cfg)
	trackingModule := tracking.NewModule(db, cfg)

	blogModule, err := blog.NewModule(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize blog module: %v", err)
	}

	filestorageModule, err := filestorage.NewModule(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	siteanalyticsModule, err := siteanalytics.NewModule(ctx, cfg, redisClient)
	if err != nil {
		log.Fatalf("Failed to initialize site analytics: %v", err)
	}

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	mux := gateway.SetupRoutes(gateway.RouterConfig{
		AuthHandler:      authModule.AuthHandler,
		AuthMiddleware:   authMiddleware,
		StatsHandler:     appstoreModule.StatsHandler,
		DashboardHandler: siteanalyticsModule.DashboardHandler,
		BlogHandler:      blogModule.BlogHandler,
		MediaHandler:     filestorageModule.MediaHandler,
		TrackingHandler:  trackingModule.TrackingHandler,
	})

	handler := middleware.CORSMiddleware(middleware.PrometheusMiddleware(mux), cfg.Server.AllowedOrigins)

	server := gateway.NewServer(cfg.Server.Port, handler)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
