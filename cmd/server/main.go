package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/bornholm/darkroom/internal/build"
	"github.com/bornholm/darkroom/internal/config"
	"github.com/bornholm/darkroom/internal/setup"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"

	// Asset stores
	_ "github.com/bornholm/darkroom/internal/adapter/cloudinary"
	_ "github.com/bornholm/darkroom/internal/adapter/memory"
	_ "github.com/bornholm/darkroom/internal/adapter/minio"
	_ "github.com/bornholm/darkroom/internal/adapter/s3"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conf, err := config.Parse()
	if err != nil {
		slog.ErrorContext(ctx, "could not parse config", slogx.Error(errors.WithStack(err)))
		os.Exit(1)
	}

	logger := slog.New(slogx.ContextHandler{
		Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level:     slog.Level(conf.Logger.Level),
			AddSource: true,
		}),
	})

	slog.SetDefault(logger)

	slog.DebugContext(ctx, "using configuration", slog.Any("config", conf))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	go func() {
		slog.InfoContext(ctx, "use ctrl+c to interrupt")
		<-sig
		cancel()
	}()

	server, err := setup.NewHTTPServerFromConfig(ctx, conf)
	if err != nil {
		slog.ErrorContext(ctx, "could not setup http server", slogx.Error(errors.WithStack(err)))
		os.Exit(1)
	}

	slog.InfoContext(ctx, "starting server", slog.String("version", build.ShortVersion), slog.Any("address", conf.HTTP.Address))

	if err := server.Run(ctx); err != nil {
		slog.Error("could not run server", slogx.Error(errors.WithStack(err)))
		os.Exit(1)
	}
}
