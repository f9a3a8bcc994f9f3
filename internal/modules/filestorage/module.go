package filestorage

import (
	"context"
	"log"

	"github.com/dorecipe/dorecipe-api/internal/modules/filestorage/application"
	"github.com/dorecipe/dorecipe-api/internal/modules/filestorage/infrastructure/s3"
	"github.com/dorecipe/dorecipe-api/internal/modules/filestorage/interfaces/http"
	"github.com/dorecipe/dorecipe-api/internal/shared/infrastructure/config"
)

type Module struct {
	MediaService *application.MediaService
	MediaHandler *http.MediaHandler
}

// NewModule wires blog media storage. Without a configured bucket the
// upload endpoint stays mounted but rejects requests.
func NewModule(ctx context.Context, cfg config.Config) (*Module, error) {
	var storage application.FileStorage
	if cfg.FileStorage.S3BucketName != "" {
		s3Storage, err := s3.NewS3Storage(ctx, s3.S3Config{
			BucketName:     cfg.FileStorage.S3BucketName,
			Region:         cfg.FileStorage.S3Region,
			Endpoint:       cfg.FileStorage.S3Endpoint,
			PublicEndpoint: cfg.FileStorage.S3PublicEndpoint,
			AccessKey:      cfg.FileStorage.S3AccessKey,
			SecretKey:      cfg.FileStorage.S3SecretKey,
			UseSSL:         cfg.FileStorage.S3UseSSL,
		})
		if err != nil {
			return nil, err
		}
		storage = s3Storage
	} else {
		log.Println("filestorage: S3 bucket not configured, media uploads disabled")
	}

	service := application.NewMediaService(storage)
	handler := http.NewMediaHandler(service)

	return &Module{
		MediaService: service,
		MediaHandler: handler,
	}, nil
}
