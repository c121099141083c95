package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if HEARTRISK_CONFIG is set
//  3. env (prefix HEARTRISK_), including values preloaded from .env
func Load(ctx context.Context) (*Config, error) {
	// A local .env is a convenience for development; a missing file is fine.
	_ = godotenv.Load()

	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("HEARTRISK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: HEARTRISK_SERVICE_URL, HEARTRISK_TIMEOUT_MS, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("HEARTRISK_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "heartrisk_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	if strings.TrimSpace(cfg.ServiceURL) == "" {
		return nil, fmt.Errorf("%w: service_url must not be empty", ErrInvalidConfig)
	}
	if cfg.TimeoutMS <= 0 {
		return nil, fmt.Errorf("%w: timeout_ms must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
