package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dorecipe/dorecipe-api/internal/gateway/middleware"
	"github.com/dorecipe/dorecipe-api/internal/modules/blog/application"
	"github.com/dorecipe/dorecipe-api/internal/modules/blog/domain"
	"github.com/dorecipe/dorecipe-api/internal/shared/utils"
)

// BlogService defines the interface for CMS operations
type BlogService interface {
	ListAll(ctx context.Context) ([]domain.Post, error)
	ListPublished(ctx context.Context) ([]domain.Post, error)
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*domain.Post, error)
	Create(ctx context.Context, input application.CreatePostInput, authorEmail string) (*domain.Post, error)
	Update(ctx context.Context, id string, input application.UpdatePostInput) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}

type BlogHandler struct {
	service BlogService
}

func NewBlogHandler(service BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

// ListPublished serves the public blog index.
func (h *BlogHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPublished(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch posts", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, posts)
}

// GetBySlug serves a single public post. Drafts 404 here.
func (h *BlogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	post, err := h.service.GetPublishedBySlug(r.Context(), slug)
	if err != nil {
		if err == domain.ErrPostNotFound {
			utils.WriteError(w, http.StatusNotFound, "post not found", nil)
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch post", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, post)
}

// ListAll serves the admin post list, drafts included.
func (h *BlogHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListAll(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch posts", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, posts)
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if err == domain.ErrPostNotFound {
			utils.WriteError(w, http.StatusNotFound, "post not found", nil)
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch post", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, post)
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	authorEmail, ok := r.Context().Value(middleware.ContextKeyAdminEmail).(string)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	var input application.CreatePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	post, err := h.service.Create(r.Context(), input, authorEmail)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, post)
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input application.UpdatePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	post, err := h.service.Update(r.Context(), r.PathValue("id"), input)
	if err != nil {
		if err == domain.ErrPostNotFound {
			utils.WriteError(w, http.StatusNotFound, "post not found", nil)
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update post", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, post)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		if err == domain.ErrPostNotFound {
			utils.WriteError(w, http.StatusNotFound, "post not found", nil)
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete post", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
