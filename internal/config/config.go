package config

import (
	"context"

	"github.com/caarlos0/env/v11"

	"relief-fund/internal/config/configs"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library.
// The nested structs are tagged with envPrefix so their fields are parsed
// with the given prefix. See the individual types in the configs package
// for default values. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev). It is
	// attached to every log record.
	Env string `env:"ENV" envDefault:"prod"`

	HTTP    configs.HTTP     `envPrefix:"HTTP_"`
	Log     configs.Logger   `envPrefix:"LOG_"`
	Psql    configs.Postgres `envPrefix:"PSQL_"`
	Ledger  configs.Ledger   `envPrefix:"LEDGER_"`
	Admin   configs.Admin    `envPrefix:"ADMIN_"`
	Metrics configs.Metrics  `envPrefix:"METRICS_"`
	Session configs.Sessions `envPrefix:"SESSION_"`
}

// Load reads configuration from environment variables into a Config and
// checks the values that cannot be validated by parsing alone.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if _, err := cfg.Ledger.MinDonationAmount(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

type ctxKey struct{}

// WithContext stores cfg in ctx for command handlers.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config stored by WithContext, or nil.
func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(ctxKey{}).(*Config)
	return cfg
}
