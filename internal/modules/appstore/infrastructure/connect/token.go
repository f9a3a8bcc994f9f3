package connect

import (
	"fmt"
	"strings"
	"time"

	"github.com/dorecipe/dorecipe-api/internal/modules/appstore/domain"
	"github.com/golang-jwt/jwt/v5"
)

const tokenAudience = "appstoreconnect-v1"
const tokenLifetime = 20 * time.Minute

// TokenSource builds short-lived ES256 tokens for the App Store Connect API.
// The private key is kept as normalized PEM text and parsed per token, so a
// malformed key surfaces as a request-time error rather than at startup.
type TokenSource struct {
	issuerID string
	keyID    string
	pemKey   []byte
}

// NewTokenSource returns a token source for the given credentials.
// Returns domain.ErrNotConfigured when any of the three secrets is absent.
func NewTokenSource(issuerID, keyID, privateKey string) (*TokenSource, error) {
	if issuerID == "" || keyID == "" || privateKey == "" {
		return nil, domain.ErrNotConfigured
	}

	return &TokenSource{
		issuerID: issuerID,
		keyID:    keyID,
		pemKey:   []byte(normalizeKey(privateKey)),
	}, nil
}

// Token signs a fresh 20-minute bearer token.
func (t *TokenSource) Token() (string, error) {
	key, err := jwt.ParseECPrivateKeyFromPEM(t.pemKey)
	if err != nil {
		return "", fmt.Errorf("failed to parse app store private key: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss": t.issuerID,
		"aud": tokenAudience,
		"iat": jwt.NewNumericDate(now),
		"exp": jwt.NewNumericDate(now.Add(tokenLifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = t.keyID

	return token.SignedString(key)
}

// normalizeKey undoes the mangling env files apply to multi-line PEM values:
// surrounding quotes and escaped newlines.
func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if strings.HasPrefix(key, `"`) && strings.HasSuffix(key, `"`) && len(key) >= 2 {
		key = key[1 : len(key)-1]
	}
	return strings.ReplaceAll(key, `\n`, "\n")
}
