package auth

import (
	"github.com/dorecipe/dorecipe-api/internal/modules/auth/application"
	"github.com/dorecipe/dorecipe-api/internal/modules/auth/interfaces/http"
	"github.com/dorecipe/dorecipe-api/internal/shared/infrastructure/config"
)

type Module struct {
	AuthService *application.AuthService
	AuthHandler *http.AuthHandler
}

func NewModule(cfg config.Config) *Module {
	service := application.NewAuthService(
		cfg.Admin.Email,
		cfg.Admin.PasswordHash,
		cfg.JWT.Secret,
		cfg.JWT.Expiry,
	)
	handler := http.NewAuthHandler(service)

	return &Module{
		AuthService: service,
		AuthHandler: handler,
	}
}
