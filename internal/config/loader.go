package config

import (
	"context"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names.
const (
	EnvPrefix     = "MERGINGTON_"
	EnvConfigFile = EnvPrefix + "CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if MERGINGTON_CONFIG is set
//  3. env (prefix MERGINGTON_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, wrap(ErrLoadConfig, err)
		}
	}

	// MERGINGTON_ENFORCE_CAPACITY -> enforce_capacity (flat keys).
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, wrap(ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, wrap(ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field-level constraints.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return invalid("addr must not be empty")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return invalid("log_format must be text or json, got %q", c.LogFormat)
	}
	if strings.TrimSpace(c.MetricsNamespace) == "" {
		return invalid("metrics_namespace must not be empty")
	}
	for i := 1; i < len(c.MetricsBuckets); i++ {
		if c.MetricsBuckets[i] <= c.MetricsBuckets[i-1] {
			return invalid("metrics_buckets must be strictly increasing, got %v", c.MetricsBuckets)
		}
	}
	if c.MetricsRefreshMS <= 0 {
		return invalid("metrics_refresh_ms must be positive, got %d", c.MetricsRefreshMS)
	}
	if c.SeedFile != "" {
		if _, err := os.Stat(c.SeedFile); err != nil {
			return invalid("seed_file: %v", err)
		}
	}
	return nil
}
