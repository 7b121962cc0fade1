// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
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

	// APIKeys are the accepted values for the X-API-Key header on
	// mutating routes (posting/clearing an override, registering a push
	// token). Required — the server refuses to start without at least
	// one key, so the write surface is never accidentally open.
	// Set API_KEYS to a comma-separated list.
	APIKeys []string

	// RefreshInterval is how often the snapshot tracker re-polls the
	// database. Defaults to 30s, matching the dashboards' poll cadence.
	RefreshInterval time.Duration

	// TimeOffset shifts the server's idea of "now", for rehearsing the
	// trip before departure. Defaults to 0. Accepts any Go duration
	// string (e.g. "72h", "-30m").
	TimeOffset time.Duration
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		APIKeys:     splitCSV(os.Getenv("API_KEYS")),
	}

	var err error
	cfg.RefreshInterval, err = getDuration("REFRESH_INTERVAL", 30*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.TimeOffset, err = getDuration("TIME_OFFSET", 0)
	if err != nil {
		return Config{}, err
	}
	if cfg.RefreshInterval <= 0 {
		return Config{}, fmt.Errorf("REFRESH_INTERVAL must be positive, got %s", cfg.RefreshInterval)
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(cfg.APIKeys) == 0 {
		missing = append(missing, "API_KEYS")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
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

// getDuration parses the environment variable named by key as a Go
// duration, returning fallback when the variable is not set.
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid duration: %q", key, v)
	}
	return d, nil
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
