package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// DefaultDataSourceURL is the provenance of the station history file, quoted
// in the generator's output banner.
const DefaultDataSourceURL = "ftp://ftp.ncdc.noaa.gov/pub/data/noaa/isd-history.csv"

// Config holds all tool settings, populated from environment variables.
type Config struct {
	LogLevel  string
	LogFormat string

	// DataSourceURL names where the input CSV was obtained, for the banner.
	DataSourceURL string

	// HTTPAddr is the health/metrics listen address for long-running
	// commands. Empty disables the server.
	HTTPAddr        string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "text"),
		DataSourceURL:   envOrDefault("DATA_SOURCE_URL", DefaultDataSourceURL),
		HTTPAddr:        os.Getenv("HTTP_ADDR"),
		ShutdownTimeout: shutdownTimeout,
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}
	if cfg.DataSourceURL == "" {
		return nil, errors.New("DATA_SOURCE_URL must not be empty")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseShutdownTimeout() (time.Duration, error) {
	s := envOrDefault("SHUTDOWN_TIMEOUT", "10s")
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	return d, nil
}
