package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dorecipe/dorecipe-api/internal/shared/infrastructure/database"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Database    database.PostgresConfig
	Redis       database.RedisConfig
	JWT         JWTConfig
	Admin       AdminConfig
	AppStore    AppStoreConfig
	RevenueCat  RevenueCatConfig
	Google      GoogleConfig
	FileStorage FileStorageConfig
	Tracking    TrackingConfig
	Blog        BlogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins string
}

// JWTConfig holds admin session token configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// AdminConfig holds the single admin identity.
// The password is stored as a bcrypt hash, never in plaintext.
type AdminConfig struct {
	Email        string
	PasswordHash string
}

// AppStoreConfig holds App Store Connect API credentials plus the
// hand-maintained all-time totals.
type AppStoreConfig struct {
	IssuerID     string
	KeyID        string
	PrivateKey   string
	VendorNumber string
	AppID        string
	ProductSKU   string

	// All-time totals are too expensive to recompute by walking every
	// daily report since launch, so they are maintained by hand.
	// AllTimeRefreshedAt records when they were last updated.
	AllTimeDownloads   int
	AllTimeRevenue     decimal.Decimal
	AllTimeRefreshedAt time.Time
}

// Configured reports whether all three signing secrets are present.
func (c AppStoreConfig) Configured() bool {
	return c.IssuerID != "" && c.KeyID != "" && c.PrivateKey != ""
}

// RevenueCatConfig holds subscription metrics API configuration
type RevenueCatConfig struct {
	APIKey    string
	ProjectID string
}

// GoogleConfig holds Google Analytics / Search Console configuration
type GoogleConfig struct {
	CredentialsJSON   string
	PropertyID        string
	SearchConsoleSite string
}

// Configured reports whether the analytics dashboard can reach Google APIs.
func (c GoogleConfig) Configured() bool {
	return c.CredentialsJSON != "" && c.PropertyID != ""
}

// FileStorageConfig holds blog media storage configuration
type FileStorageConfig struct {
	S3Region         string
	S3Endpoint       string
	S3PublicEndpoint string
	S3AccessKey      string
	S3SecretKey      string
	S3BucketName     string
	S3UseSSL         bool
}

// TrackingConfig holds first-party event tracking configuration.
// ExcludedClients lists opaque client ids whose traffic is never recorded,
// so operator visits do not pollute conversion numbers.
type TrackingConfig struct {
	ExcludedClients []string
}

// BlogConfig holds the blog store location
type BlogConfig struct {
	DataDir string
}

// Load reads configuration from environment variables
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Database: database.PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "dorecipe"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: database.RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "default-dev-secret"),
			Expiry: parseDuration(getEnv("JWT_EXPIRATION", "24h"), 24*time.Hour),
		},
		Admin: AdminConfig{
			Email:        getEnv("ADMIN_EMAIL", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		AppStore: AppStoreConfig{
			IssuerID:           getEnv("APPSTORE_ISSUER_ID", ""),
			KeyID:              getEnv("APPSTORE_KEY_ID", ""),
			PrivateKey:         getEnv("APPSTORE_PRIVATE_KEY", ""),
			VendorNumber:       getEnv("APPSTORE_VENDOR_NUMBER", ""),
			AppID:              getEnv("APPSTORE_APP_ID", "6745566524"),
			ProductSKU:         getEnv("APPSTORE_PRODUCT_SKU", "com.dorecipe.app"),
			AllTimeDownloads:   parseInt(getEnv("APPSTORE_ALLTIME_DOWNLOADS", "0"), 0),
			AllTimeRevenue:     parseDecimal(getEnv("APPSTORE_ALLTIME_REVENUE", "0")),
			AllTimeRefreshedAt: parseDate(getEnv("APPSTORE_ALLTIME_REFRESHED_AT", "")),
		},
		RevenueCat: RevenueCatConfig{
			APIKey:    getEnv("REVENUECAT_API_KEY", ""),
			ProjectID: getEnv("REVENUECAT_PROJECT_ID", ""),
		},
		Google: GoogleConfig{
			CredentialsJSON:   getEnv("GOOGLE_APPLICATION_CREDENTIALS_JSON", ""),
			PropertyID:        getEnv("GA_PROPERTY_ID", ""),
			SearchConsoleSite: getEnv("GSC_SITE_URL", "sc-domain:dorecipe.app"),
		},
		FileStorage: FileStorageConfig{
			S3Region:         getEnv("S3_REGION", "us-east-1"),
			S3Endpoint:       getEnv("S3_ENDPOINT", ""),
			S3PublicEndpoint: getEnv("S3_PUBLIC_ENDPOINT", getEnv("S3_ENDPOINT", "")),
			S3AccessKey:      getEnv("S3_ACCESS_KEY", ""),
			S3SecretKey:      getEnv("S3_SECRET_KEY", ""),
			S3BucketName:     getEnv("S3_BUCKET", ""),
			S3UseSSL:         getEnv("S3_USE_SSL", "true") == "true",
		},
		Tracking: TrackingConfig{
			ExcludedClients: splitList(getEnv("TRACKING_EXCLUDED_CLIENTS", "")),
		},
		Blog: BlogConfig{
			DataDir: getEnv("BLOG_DATA_DIR", "./data/blog"),
		},
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDuration parses a duration string or returns a default value
func parseDuration(value string, defaultValue time.Duration) time.Duration {
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}

func parseInt(value string, defaultValue int) int {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return defaultValue
}

func parseDecimal(value string) decimal.Decimal {
	if d, err := decimal.NewFromString(value); err == nil {
		return d
	}
	return decimal.Zero
}

func parseDate(value string) time.Time {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t
	}
	return time.Time{}
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
