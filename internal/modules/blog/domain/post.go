package domain

import (
	"context"
	"errors"
	"time"
)

// Post is a blog entry. The CMS is file-backed: each post lives in its own
// JSON document keyed by ID.
type Post struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content"`
	Author        string    `json:"author"`
	PublishedAt   time.Time `json:"publishedAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Published     bool      `json:"published"`
	FeaturedImage string    `json:"featuredImage,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
}

// PostRepository abstracts post storage.
type PostRepository interface {
	// List returns all posts, newest first.
	List(ctx context.Context) ([]Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)
	Save(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id string) error
}

var ErrPostNotFound = errors.New("post not found")
