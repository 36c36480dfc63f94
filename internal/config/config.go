package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// RetentionPolicy decides what happens to an owner's persisted transactions on logout.
type RetentionPolicy string

const (
	// RetainOnLogout keeps the persisted collection so the next login sees it again.
	RetainOnLogout RetentionPolicy = "retain"
	// EraseOnLogout deletes the persisted collection together with the session.
	EraseOnLogout RetentionPolicy = "erase"
)

// UpdateMissingPolicy decides how an update of an unknown transaction id is reported.
type UpdateMissingPolicy string

const (
	// IgnoreMissingUpdate treats the update as a silent no-op.
	IgnoreMissingUpdate UpdateMissingPolicy = "ignore"
	// RejectMissingUpdate reports the update as a not-found error.
	RejectMissingUpdate UpdateMissingPolicy = "error"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Log      LogConfig
	Session  SessionConfig
	Store    StoreConfig
	Cache    CacheConfig
	Loan     LoanConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// SessionConfig holds session and identity configuration.
// Key is a base64 fernet key; when empty a fresh key is generated at startup
// and every restart invalidates outstanding sessions.
type SessionConfig struct {
	Key           string
	TTL           time.Duration
	SweepSchedule string
	AdminEmails   []string
}

// StoreConfig holds the configurable transaction store policies.
type StoreConfig struct {
	Retention     RetentionPolicy
	UpdateMissing UpdateMissingPolicy
}

// CacheConfig holds the key-value read cache configuration.
type CacheConfig struct {
	MaxItems int64
}

// LoanConfig holds calculator configuration.
// ZeroRate is "degenerate" (a 0% rate yields the zero result) or
// "straight-line" (principal spread evenly over the term).
type LoanConfig struct {
	ZeroRate string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL: must be positive")
	}

	maxItems, err := strconv.ParseInt(getEnv("CACHE_MAX_ITEMS", "1000"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_MAX_ITEMS: %w", err)
	}

	retention := RetentionPolicy(strings.ToLower(getEnv("RETENTION_POLICY", string(RetainOnLogout))))
	if retention != RetainOnLogout && retention != EraseOnLogout {
		return nil, fmt.Errorf("invalid RETENTION_POLICY: %s", retention)
	}

	updateMissing := UpdateMissingPolicy(strings.ToLower(getEnv("UPDATE_MISSING_POLICY", string(IgnoreMissingUpdate))))
	if updateMissing != IgnoreMissingUpdate && updateMissing != RejectMissingUpdate {
		return nil, fmt.Errorf("invalid UPDATE_MISSING_POLICY: %s", updateMissing)
	}

	zeroRate := strings.ToLower(getEnv("LOAN_ZERO_RATE", "degenerate"))
	if zeroRate != "degenerate" && zeroRate != "straight-line" {
		return nil, fmt.Errorf("invalid LOAN_ZERO_RATE: %s", zeroRate)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/finance_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Session: SessionConfig{
			Key:           os.Getenv("SESSION_KEY"),
			TTL:           ttl,
			SweepSchedule: getEnv("SESSION_SWEEP_SCHEDULE", "@every 1h"),
			AdminEmails:   splitList(getEnv("ADMIN_EMAILS", "admin@example.com")),
		},
		Store: StoreConfig{
			Retention:     retention,
			UpdateMissing: updateMissing,
		},
		Cache: CacheConfig{
			MaxItems: maxItems,
		},
		Loan: LoanConfig{
			ZeroRate: zeroRate,
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// splitList splits a comma-separated value, dropping empty entries.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
