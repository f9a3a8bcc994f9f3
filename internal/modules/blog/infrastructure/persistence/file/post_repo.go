package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dorecipe/dorecipe-api/internal/modules/blog/domain"
)

// PostRepository stores each post as <id>.json under a data directory.
type PostRepository struct {
	dir string
}

// NewPostRepository creates the data directory if needed.
func NewPostRepository(dir string) (*PostRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blog data dir: %w", err)
	}
	return &PostRepository{dir: dir}, nil
}

// List reads every post file, newest first. A file that fails to parse is
// logged and skipped rather than breaking the whole listing.
func (r *PostRepository) List(ctx context.Context) ([]domain.Post, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read blog data dir: %w", err)
	}

	posts := make([]domain.Post, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			log.Printf("blog: failed to read %s: %v", entry.Name(), err)
			continue
		}

		var post domain.Post
		if err := json.Unmarshal(data, &post); err != nil {
			log.Printf("blog: skipping malformed post file %s: %v", entry.Name(), err)
			continue
		}
		posts = append(posts, post)
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})

	return posts, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	data, err := os.ReadFile(r.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to read post %s: %w", id, err)
	}

	var post domain.Post
	if err := json.Unmarshal(data, &post); err != nil {
		return nil, fmt.Errorf("failed to parse post %s: %w", id, err)
	}
	return &post, nil
}

func (r *PostRepository) Save(ctx context.Context, post *domain.Post) error {
	data, err := json.MarshalIndent(post, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode post %s: %w", post.ID, err)
	}

	if err := os.WriteFile(r.path(post.ID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write post %s: %w", post.ID, err)
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	if err := os.Remove(r.path(id)); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrPostNotFound
		}
		return fmt.Errorf("failed to delete post %s: %w", id, err)
	}
	return nil
}

func (r *PostRepository) path(id string) string {
	// Post ids are UUIDs we generate, but never trust them as path segments.
	return filepath.Join(r.dir, filepath.Base(id)+".json")
}
