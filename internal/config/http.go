package config

import (
	"log/slog"
	"time"
)

type HTTP struct {
	BaseURL   string    `env:"BASE_URL,expand" envDefault:"/"`
	Address   string    `env:"ADDRESS,expand" envDefault:":3002"`
	Auth      Auth      `envPrefix:"AUTH_"`
	CORS      CORS      `envPrefix:"CORS_"`
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`
}

type Auth struct {
	Username string `env:"USERNAME,expand"`
	Password string `env:"PASSWORD,expand"`
}

// LogValue implements slog.LogValuer.
func (a Auth) LogValue() slog.Value {
	password := ""
	if a.Password != "" {
		password = "xxxxx"
	}

	return slog.GroupValue(
		slog.String("Username", a.Username),
		slog.String("Password", password),
	)
}

type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,expand" envSeparator:","`
}

type RateLimit struct {
	Enabled      bool          `env:"ENABLED,expand" envDefault:"true"`
	TrustHeaders bool          `env:"TRUST_HEADERS,expand" envDefault:"false"`
	Interval     time.Duration `env:"INTERVAL,expand" envDefault:"1s"`
	MaxBurst     int           `env:"MAX_BURST,expand" envDefault:"10"`
	CacheSize    int           `env:"CACHE_SIZE,expand" envDefault:"1024"`
	CacheTTL     time.Duration `env:"CACHE_TTL,expand" envDefault:"10m"`
}
