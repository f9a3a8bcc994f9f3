package application

import (
	"context"
	"errors"
	"time"

	"github.com/dorecipe/dorecipe-api/internal/modules/blog/domain"
	"github.com/google/uuid"
)

type CreatePostInput struct {
	Title         string   `json:"title"`
	Slug          string   `json:"slug"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content"`
	Published     bool     `json:"published"`
	FeaturedImage string   `json:"featuredImage,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// UpdatePostInput carries a partial update; nil fields are left unchanged.
type UpdatePostInput struct {
	Title         *string   `json:"title,omitempty"`
	Slug          *string   `json:"slug,omitempty"`
	Excerpt       *string   `json:"excerpt,omitempty"`
	Content       *string   `json:"content,omitempty"`
	Published     *bool     `json:"published,omitempty"`
	FeaturedImage *string   `json:"featuredImage,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
}

// BlogService provides the CMS operations over the post repository.
type BlogService struct {
	repo domain.PostRepository
	now  func() time.Time
}

func NewBlogService(repo domain.PostRepository) *BlogService {
	return &BlogService{repo: repo, now: time.Now}
}

// ListAll returns every post, drafts included. Admin only.
func (s *BlogService) ListAll(ctx context.Context) ([]domain.Post, error) {
	return s.repo.List(ctx)
}

// ListPublished returns published posts, newest first.
func (s *BlogService) ListPublished(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	published := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if p.Published {
			published = append(published, p)
		}
	}
	return published, nil
}

func (s *BlogService) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return s.repo.GetByID(ctx, id)
}

// GetPublishedBySlug resolves a public blog URL. Drafts are invisible here.
func (s *BlogService) GetPublishedBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		if posts[i].Slug == slug && posts[i].Published {
			return &posts[i], nil
		}
	}
	return nil, domain.ErrPostNotFound
}

// Create stores a new post authored by the current admin session.
func (s *BlogService) Create(ctx context.Context, input CreatePostInput, authorEmail string) (*domain.Post, error) {
	if input.Title == "" {
		return nil, errors.New("title is required")
	}
	if input.Slug == "" {
		return nil, errors.New("slug is required")
	}

	now := s.now()
	post := &domain.Post{
		ID:            uuid.New().String(),
		Title:         input.Title,
		Slug:          input.Slug,
		Excerpt:       input.Excerpt,
		Content:       input.Content,
		Author:        authorEmail,
		PublishedAt:   now,
		UpdatedAt:     now,
		Published:     input.Published,
		FeaturedImage: input.FeaturedImage,
		Tags:          input.Tags,
	}

	if err := s.repo.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update applies a partial update and bumps the updated timestamp.
func (s *BlogService) Update(ctx context.Context, id string, input UpdatePostInput) (*domain.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Slug != nil {
		post.Slug = *input.Slug
	}
	if input.Excerpt != nil {
		post.Excerpt = *input.Excerpt
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Published != nil {
		post.Published = *input.Published
	}
	if input.FeaturedImage != nil {
		post.FeaturedImage = *input.FeaturedImage
	}
	if input.Tags != nil {
		post.Tags = *input.Tags
	}
	post.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
