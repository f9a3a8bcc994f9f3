package application

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"io"
	"log"
	"net/http"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const thumbnailWidth = 480

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// FileStorage abstracts the object store used for blog media.
type FileStorage interface {
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
}

// UploadResult holds the public URLs of an uploaded image.
type UploadResult struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// MediaService uploads blog images and generates thumbnails for list views.
type MediaService struct {
	storage FileStorage
}

func NewMediaService(storage FileStorage) *MediaService {
	return &MediaService{storage: storage}
}

// UploadImage stores the original image and a 480px-wide JPEG thumbnail.
// Thumbnail generation failure is not fatal; the original URL is still
// returned so the editor can proceed.
func (s *MediaService) UploadImage(ctx context.Context, filename string, data []byte) (*UploadResult, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("file storage not configured")
	}

	contentType := http.DetectContentType(data)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("unsupported image type %s", contentType)
	}

	// Keep the original extension when it matches the detected type.
	if orig := strings.ToLower(path.Ext(filename)); orig == ext || (orig == ".jpeg" && ext == ".jpg") {
		ext = orig
	}

	key := "blog/" + uuid.New().String() + ext
	url, err := s.storage.UploadFile(ctx, key, bytes.NewReader(data), contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	result := &UploadResult{URL: url}

	thumbKey := strings.TrimSuffix(key, ext) + "-thumb.jpg"
	thumbURL, err := s.uploadThumbnail(ctx, thumbKey, data)
	if err != nil {
		log.Printf("media: thumbnail generation failed for %s: %v", key, err)
		return result, nil
	}
	result.ThumbnailURL = thumbURL

	return result, nil
}

func (s *MediaService) uploadThumbnail(ctx context.Context, key string, data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return s.storage.UploadFile(ctx, key, &buf, "image/jpeg")
}
