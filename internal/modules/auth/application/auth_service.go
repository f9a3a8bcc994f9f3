package application

import (
	"context"
	"time"

	"github.com/dorecipe/dorecipe-api/internal/modules/auth/domain"
	"github.com/dorecipe/dorecipe-api/internal/modules/auth/infrastructure/jwt"
	"github.com/dorecipe/dorecipe-api/internal/shared/utils"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthService authenticates the configured admin and issues session tokens.
// There is no user table: the only account is the operator, configured as an
// email plus a bcrypt hash in the environment.
type AuthService struct {
	adminEmail        string
	adminPasswordHash string
	jwtSecret         string
	jwtExpiry         time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(adminEmail, adminPasswordHash, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
		jwtSecret:         jwtSecret,
		jwtExpiry:         jwtExpiry,
	}
}

// Login verifies the admin credentials and returns a session token.
// Wrong email and wrong password return the same error so the response
// never reveals which field failed.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, error) {
	if req.Email == "" || req.Password == "" {
		return "", domain.ErrInvalidCredentials
	}
	if !utils.IsValidEmail(req.Email) {
		return "", domain.ErrInvalidCredentials
	}

	if s.adminEmail == "" || s.adminPasswordHash == "" {
		return "", domain.ErrNotConfigured
	}

	if req.Email != s.adminEmail {
		return "", domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(req.Password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	return jwt.GenerateToken(s.jwtSecret, s.jwtExpiry, s.adminEmail, domain.RoleAdmin)
}

// Identity returns the configured admin identity.
func (s *AuthService) Identity() *domain.Admin {
	return &domain.Admin{
		Email: s.adminEmail,
		Name:  "Admin",
		Role:  domain.RoleAdmin,
	}
}

// SessionExpiry returns the configured session lifetime.
func (s *AuthService) SessionExpiry() time.Duration {
	return s.jwtExpiry
}
