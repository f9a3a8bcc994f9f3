package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dorecipe/dorecipe-api/internal/modules/auth/infrastructure/jwt"
)

type contextKey string

const (
	ContextKeyAdminEmail contextKey = "admin_email"
	ContextKeyRole       contextKey = "role"
)

// SessionCookieName is the HttpOnly cookie carrying the admin session token.
const SessionCookieName = "dorecipe_session"

type AuthMiddleware struct {
	jwtSecret string
}

// NewAuthMiddleware creates middleware that validates admin session tokens.
// The dashboard sends the token as an HttpOnly cookie; API clients may send
// it as a Bearer header instead.
func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: jwtSecret}
}

// RequireAdmin enforces an authenticated admin session. The session cookie is
// checked first, then the Authorization header. On failure it responds 401
// without invoking the next handler, so protected endpoints never reach any
// external API for unauthenticated requests.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := sessionToken(r)
		if tokenStr == "" {
			http.Error(w, `{"error": "Unauthorized"}`, http.StatusUnauthorized)
			return
		}

		claims, err := jwt.ValidateToken(tokenStr, m.jwtSecret)
		if err != nil {
			http.Error(w, `{"error": "Unauthorized"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyAdminEmail, claims.Email)
		ctx = context.WithValue(ctx, ContextKeyRole, claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FlexibleAuth attempts to authenticate but proceeds either way. Handlers that
// behave differently for the operator (e.g. tracking exclusion) read the
// identity from context when present.
func (m *AuthMiddleware) FlexibleAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := sessionToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := jwt.ValidateToken(tokenStr, m.jwtSecret)
		if err != nil {
			// Invalid or expired session - proceed as guest
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyAdminEmail, claims.Email)
		ctx = context.WithValue(ctx, ContextKeyRole, claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	return ""
}
