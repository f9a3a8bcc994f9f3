package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dorecipe/dorecipe-api/internal/modules/auth/domain"
	"github.com/dorecipe/dorecipe-api/internal/modules/auth/infrastructure/jwt"
)

const testSecret = "test-secret"

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	return NewAuthService("admin@dorecipe.app", string(hash), testSecret, time.Hour)
}

func TestAuthService_Login(t *testing.T) {
	svc := newTestAuthService(t)

	token, err := svc.Login(context.Background(), LoginRequest{
		Email:    "admin@dorecipe.app",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	claims, err := jwt.ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin@dorecipe.app", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc := newTestAuthService(t)

	cases := []struct {
		name string
		req  LoginRequest
	}{
		{"wrong password", LoginRequest{Email: "admin@dorecipe.app", Password: "wrong"}},
		{"wrong email", LoginRequest{Email: "intruder@example.com", Password: "correct-horse"}},
		{"empty password", LoginRequest{Email: "admin@dorecipe.app"}},
		{"empty email", LoginRequest{Password: "correct-horse"}},
		{"malformed email", LoginRequest{Email: "not-an-email", Password: "correct-horse"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.req)
			// Every failure mode maps to the same error.
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		})
	}
}

func TestAuthService_Login_NotConfigured(t *testing.T) {
	svc := NewAuthService("", "", testSecret, time.Hour)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "admin@dorecipe.app",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestAuthService_Identity(t *testing.T) {
	svc := newTestAuthService(t)

	admin := svc.Identity()
	assert.Equal(t, "admin@dorecipe.app", admin.Email)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
}
