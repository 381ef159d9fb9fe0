// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultFetchTimeout bounds each HTTP fetch of a remote visit log or directory.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultMaxBodyBytes is the largest request body the API accepts.
	DefaultMaxBodyBytes = 1 << 20
)

// Config holds all configuration values for the API server and CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// VisitsSource is the URL or file path of the visit log (data.json).
	VisitsSource string

	// BreweriesSource is the URL or file path of the brewery directory.
	// Empty means no directory: the brewery list is built from visits alone.
	BreweriesSource string

	// DatabaseURL is the Postgres connection string. When set, visits and the
	// directory are read from and written to Postgres instead of JSON sources.
	DatabaseURL string

	// FetchTimeout is the HTTP client timeout for remote sources.
	FetchTimeout time.Duration

	// MaxBodyBytes caps request bodies. 0 disables the limit.
	MaxBodyBytes int64

	// VisitsFile is the writable data.json behind POST /visits when no
	// database is configured. Empty disables the write endpoint.
	VisitsFile string

	// VisitsMirrors are extra copies of VisitsFile rewritten on every write.
	VisitsMirrors []string
}

// Load reads configuration from environment variables and returns a Config.
// Empty variables fall back to their defaults. Returns an error when no visit
// source is configured or a value is out of range.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("cors_origins", "http://localhost:5173")
	v.SetDefault("visits_source", "")
	v.SetDefault("breweries_source", "")
	v.SetDefault("database_url", "")
	v.SetDefault("fetch_timeout", DefaultFetchTimeout)
	v.SetDefault("max_body_bytes", DefaultMaxBodyBytes)
	v.SetDefault("visits_file", "")
	v.SetDefault("visits_mirrors", "")

	// Keys map to upper-cased variable names: port -> PORT.
	v.AutomaticEnv()

	cfg := Config{
		Port:            v.GetString("port"),
		LogLevel:        strings.ToLower(v.GetString("log_level")),
		CORSOrigins:     splitCSV(v.GetString("cors_origins")),
		VisitsSource:    v.GetString("visits_source"),
		BreweriesSource: v.GetString("breweries_source"),
		DatabaseURL:     v.GetString("database_url"),
		FetchTimeout:    v.GetDuration("fetch_timeout"),
		MaxBodyBytes:    v.GetInt64("max_body_bytes"),
		VisitsFile:      v.GetString("visits_file"),
		VisitsMirrors:   splitCSV(v.GetString("visits_mirrors")),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required values are set and consistent.
func (c Config) Validate() error {
	var problems []string

	if c.VisitsSource == "" && c.DatabaseURL == "" {
		problems = append(problems, "one of VISITS_SOURCE or DATABASE_URL must be set")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	if c.FetchTimeout <= 0 {
		problems = append(problems, "FETCH_TIMEOUT must be a positive duration")
	}
	if c.MaxBodyBytes < 0 {
		problems = append(problems, "MAX_BODY_BYTES must be >= 0")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// SlogLevel returns LogLevel as a slog.Level. Unknown values map to info;
// Validate rejects them first.
func (c Config) SlogLevel() slog.Level {
	lvl, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", s)
	}
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
