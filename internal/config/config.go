// Package config defines client configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Load layers defaults, an optional YAML file and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"os"
	"path/filepath"
)

// Default configuration values.
const (
	defaultServiceURL   = "http://localhost:5001"
	defaultTimeoutMS    = 30_000
	defaultHistoryLimit = 20
	defaultStateFile    = "state.db"
	defaultStateDir     = ".heartrisk"
)

// Config contains process configuration for the prediction client.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// ServiceURL is the base URL of the remote scoring service.
	ServiceURL string `koanf:"service_url"`

	// TimeoutMS bounds each HTTP round trip to the scoring service.
	TimeoutMS int `koanf:"timeout_ms"`

	// StatePath locates the durable client state database that holds
	// the anonymous identity.
	StatePath string `koanf:"state_path"`

	// MetricsAddr, when non-empty, serves Prometheus metrics on that address.
	MetricsAddr string `koanf:"metrics_addr"`

	// HistoryLimit caps how many history entries the CLI renders.
	HistoryLimit int `koanf:"history_limit"`
}

// New creates a Config populated with defaults. Context is accepted first
// to satisfy the project-wide convention; it is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:     "info",
		ServiceURL:   defaultServiceURL,
		TimeoutMS:    defaultTimeoutMS,
		StatePath:    defaultStatePath(),
		MetricsAddr:  "",
		HistoryLimit: defaultHistoryLimit,
	}
}

// defaultStatePath places the state database under the user's home
// directory, falling back to the working directory when home is unknown.
func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultStateFile
	}
	return filepath.Join(home, defaultStateDir, defaultStateFile)
}
