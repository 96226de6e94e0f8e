package config

import (
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type Config struct {
	Logger    Logger    `envPrefix:"LOGGER_"`
	HTTP      HTTP      `envPrefix:"HTTP_"`
	Storage   Storage   `envPrefix:"STORAGE_"`
	Reconcile Reconcile `envPrefix:"RECONCILE_"`
	Shares    Shares    `envPrefix:"SHARES_"`
}

func Parse() (*Config, error) {
	conf, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix: "DARKROOM_",
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &conf, nil
}

// LogValue implements slog.LogValuer. Credentials are redacted.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("Logger", c.Logger),
		slog.Group("HTTP",
			slog.String("BaseURL", c.HTTP.BaseURL),
			slog.String("Address", c.HTTP.Address),
			slog.Any("Auth", c.HTTP.Auth),
			slog.Any("CORS", c.HTTP.CORS),
			slog.Any("RateLimit", c.HTTP.RateLimit),
		),
		slog.Group("Storage",
			slog.Any("Database", c.Storage.Database),
			slog.Any("Assets", c.Storage.Assets),
		),
		slog.Any("Reconcile", c.Reconcile),
		slog.Any("Shares", c.Shares),
	)
}
