package blog

import (
	"github.com/dorecipe/dorecipe-api/internal/modules/blog/application"
	"github.com/dorecipe/dorecipe-api/internal/modules/blog/infrastructure/persistence/file"
	"github.com/dorecipe/dorecipe-api/internal/modules/blog/interfaces/http"
	"github.com/dorecipe/dorecipe-api/internal/shared/infrastructure/config"
)

type Module struct {
	BlogService *application.BlogService
	BlogHandler *http.BlogHandler
}

func NewModule(cfg config.Config) (*Module, error) {
	repo, err := file.NewPostRepository(cfg.Blog.DataDir)
	if err != nil {
		return nil, err
	}

	service := application.NewBlogService(repo)
	handler := http.NewBlogHandler(service)

	return &Module{
		BlogService: service,
		BlogHandler: handler,
	}, nil
}
