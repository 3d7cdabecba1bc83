package app

import (
	"errors"
	"fmt"
	"math"

	"github.com/caarlos0/env/v11"
)

// Graph description formats accepted in Config.Format.
const (
	FormatAuto = "auto"
	FormatDSL  = "dsl"
	FormatHCL  = "hcl"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "WETWARE_"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPath string // .bio or .hcl file, or a directory of them
	Format    string `env:"FORMAT"`
	Demo      bool   // run the embedded demo graph instead of GraphPath

	Duration        float64 `env:"DURATION"`
	Dt              float64 `env:"DT"`
	Realtime        bool    `env:"REALTIME"`
	StatusEvery     int     `env:"STATUS_EVERY"` // 0 disables the status line
	Lenient         bool    `env:"LENIENT"`
	ContinueOnError bool    `env:"CONTINUE_ON_ERROR"`

	LogFormat       string `env:"LOG_FORMAT"`
	LogLevel        string `env:"LOG_LEVEL"`
	HealthcheckPort int    `env:"HEALTHCHECK_PORT"`

	CSVPath          string `env:"CSV_PATH"`
	SQLitePath       string `env:"SQLITE_PATH"`
	PublishURL       string `env:"PUBLISH_URL"`
	PublishNamespace string `env:"PUBLISH_NAMESPACE"`
	OTelEndpoint     string `env:"OTEL_ENDPOINT"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Format:      FormatAuto,
		Duration:    5.0,
		Dt:          0.1,
		StatusEvery: 10,
		LogFormat:   "text",
		LogLevel:    "info",
	}
}

// ApplyEnv overwrites the fields of cfg whose WETWARE_* variable is set.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GraphPath == "" && !cfg.Demo {
		return nil, errors.New("GraphPath is a required configuration field and cannot be empty")
	}
	if cfg.Format == "" {
		cfg.Format = FormatAuto
	}
	switch cfg.Format {
	case FormatAuto, FormatDSL, FormatHCL:
	default:
		return nil, fmt.Errorf("invalid format %q: must be 'auto', 'dsl' or 'hcl'", cfg.Format)
	}
	if cfg.Dt <= 0 || !finite(cfg.Dt) {
		return nil, fmt.Errorf("invalid dt %v: must be a positive number", cfg.Dt)
	}
	if cfg.Duration < 0 || !finite(cfg.Duration) {
		return nil, fmt.Errorf("invalid duration %v: must not be negative", cfg.Duration)
	}
	if cfg.StatusEvery < 0 {
		return nil, fmt.Errorf("invalid status interval %d: must not be negative", cfg.StatusEvery)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}
	return &cfg, nil
}
