package config

import (
	"log/slog"
	"net/url"
)

type Storage struct {
	Database Database `envPrefix:"DATABASE_"`
	Assets   Assets   `envPrefix:"ASSETS_"`
}

type Database struct {
	DSN string `env:"DSN" envDefault:"data.sqlite"`
}

// LogValue implements slog.LogValuer.
func (d Database) LogValue() slog.Value {
	return slog.GroupValue(slog.String("DSN", redactDSN(d.DSN)))
}

type Assets struct {
	DSN string `env:"DSN" envDefault:"memory://"`
}

// LogValue implements slog.LogValuer.
func (a Assets) LogValue() slog.Value {
	return slog.GroupValue(slog.String("DSN", redactDSN(a.DSN)))
}

func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}

	return u.Redacted()
}
