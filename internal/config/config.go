// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults come from New(); Load layers file and env on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// SeedFile optionally points at a YAML activity catalogue that replaces
	// the built-in one.
	SeedFile string `koanf:"seed_file"`

	// EnforceCapacity rejects signups once an activity reaches its
	// max_participants. Off by default.
	EnforceCapacity bool `koanf:"enforce_capacity"`

	// MetricsEnabled switches counter and histogram recording; gauges are
	// always kept current.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsNamespace and MetricsSubsystem form the metric name prefix,
	// e.g. mergington_activities_signups_total.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// MetricsPrefix is an optional extra name segment after the subsystem.
	MetricsPrefix string `koanf:"metrics_prefix"`

	// MetricsBuckets overrides the latency histogram buckets (milliseconds).
	MetricsBuckets []float64 `koanf:"metrics_buckets"`

	// MetricsLabels are constant labels attached to every metric.
	MetricsLabels map[string]string `koanf:"metrics_labels"`

	// MetricsRefreshMS sets how often registry gauges are refreshed.
	MetricsRefreshMS int `koanf:"metrics_refresh_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":8000",
		SeedFile:         "",
		EnforceCapacity:  false,
		MetricsEnabled:   true,
		MetricsNamespace: "mergington",
		MetricsSubsystem: "activities",
		MetricsRefreshMS: 5_000,
	}
}
