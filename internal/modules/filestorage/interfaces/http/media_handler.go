package http

import (
	"context"
	"io"
	"net/http"

	"github.com/dorecipe/dorecipe-api/internal/modules/filestorage/application"
	"github.com/dorecipe/dorecipe-api/internal/shared/utils"
)

// 10 MB ceiling for a single image upload.
const maxUploadSize = 10 << 20

// MediaService defines the interface for blog media uploads
type MediaService interface {
	UploadImage(ctx context.Context, filename string, data []byte) (*application.UploadResult, error)
}

type MediaHandler struct {
	service MediaService
}

func NewMediaHandler(service MediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

// Upload accepts a multipart form with a "file" field and returns the
// stored image URLs.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "missing file field", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "failed to read upload", nil)
		return
	}

	result, err := h.service.UploadImage(r.Context(), header.Filename, data)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, result)
}
