package setup

import (
	"context"
	nethttp "net/http"

	"github.com/bornholm/darkroom/internal/config"
	"github.com/bornholm/darkroom/internal/http"
	"github.com/bornholm/darkroom/internal/http/handler/health"
	"github.com/bornholm/darkroom/internal/http/handler/metrics"
	"github.com/bornholm/darkroom/internal/http/middleware/ratelimit"
	"github.com/pkg/errors"
)

func NewHTTPServerFromConfig(ctx context.Context, conf *config.Config) (*http.Server, error) {
	api, err := getAPIHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure api handler from config")
	}

	var apiHandler nethttp.Handler = api

	if rl := conf.HTTP.RateLimit; rl.Enabled {
		apiHandler = ratelimit.Middleware(rl.TrustHeaders, rl.Interval, rl.MaxBurst, rl.CacheSize, rl.CacheTTL)(apiHandler)
	}

	options := []http.OptionFunc{
		http.WithAddress(conf.HTTP.Address),
		http.WithBaseURL(conf.HTTP.BaseURL),
		http.WithAllowedOrigins(conf.HTTP.CORS.AllowedOrigins...),
		http.WithMount("/cloudinary/", apiHandler),
		http.WithMount("/shares/", apiHandler),
		http.WithMount("/metrics", metrics.NewHandler()),
		http.WithPublicMount("/healthz", health.NewHandler()),
	}

	if auth := conf.HTTP.Auth; auth.Username != "" {
		options = append(options, http.WithBasicAuth(auth.Username, auth.Password))
	}

	server := http.NewServer(options...)

	return server, nil
}
