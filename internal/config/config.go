// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Change feed drivers.
const (
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// JWTSecret verifies bearer tokens from the hosted auth backend. Required.
	JWTSecret string

	// AdminEmails may use the admin surface. Empty admits every signed-in user.
	AdminEmails []string

	// PostsDBPath is the sqlite file holding authored posts. Defaults to "posts.db".
	PostsDBPath string

	// StoreTimeout bounds each store call. Defaults to 5s.
	StoreTimeout time.Duration

	// ChangefeedDriver is "postgres" (LISTEN/NOTIFY) or "redis" (pub/sub).
	ChangefeedDriver string

	// RedisAddr is required when ChangefeedDriver is "redis".
	RedisAddr string

	// RefreshDebounce collapses bursts of change events. Defaults to 250ms.
	RefreshDebounce time.Duration

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// WhatsAppNumber and ContactEmail receive visitor handoffs.
	WhatsAppNumber string
	ContactEmail   string
}

// LoadDotEnv copies variables from the file at path into the environment
// without overriding ones already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set and any
// values that do not parse.
func Load() (Config, error) {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		AdminEmails:      splitCSV(os.Getenv("ADMIN_EMAILS")),
		PostsDBPath:      getEnv("POSTS_DB_PATH", "posts.db"),
		ChangefeedDriver: strings.ToLower(getEnv("CHANGEFEED_DRIVER", DriverPostgres)),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		WhatsAppNumber:   getEnv("WHATSAPP_NUMBER", "923169457494"),
		ContactEmail:     getEnv("CONTACT_EMAIL", "info@rupaladventures.com"),
	}

	var missing, invalid []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	switch cfg.ChangefeedDriver {
	case DriverPostgres:
	case DriverRedis:
		if cfg.RedisAddr == "" {
			missing = append(missing, "REDIS_ADDR")
		}
	default:
		invalid = append(invalid, "CHANGEFEED_DRIVER")
	}

	var err error
	if cfg.StoreTimeout, err = getDuration("STORE_TIMEOUT", 5*time.Second); err != nil {
		invalid = append(invalid, "STORE_TIMEOUT")
	}
	if cfg.RefreshDebounce, err = getDuration("REFRESH_DEBOUNCE", 250*time.Millisecond); err != nil {
		invalid = append(invalid, "REFRESH_DEBOUNCE")
	}
	if cfg.MaxBodyBytes, err = getInt64("MAX_BODY_BYTES", 1<<20); err != nil {
		invalid = append(invalid, "MAX_BODY_BYTES")
	}

	var errs []error
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", ")))
	}
	if len(invalid) > 0 {
		errs = append(errs, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", ")))
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration parses a positive time.ParseDuration value.
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

func getInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return n, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
