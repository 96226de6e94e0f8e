package setup

import (
	"context"

	"github.com/bornholm/darkroom/internal/config"
	"github.com/bornholm/darkroom/internal/http/handler/api"
	"github.com/pkg/errors"
)

func getAPIHandlerFromConfig(ctx context.Context, conf *config.Config) (*api.Handler, error) {
	reconciler, err := getFolderReconcilerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create folder reconciler from config")
	}

	deduplicator, err := getShareDeduplicatorFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create share deduplicator from config")
	}

	handler := api.NewHandler(reconciler, deduplicator)

	return handler, nil
}
