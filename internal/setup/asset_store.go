package setup

import (
	"context"

	"github.com/bornholm/darkroom/internal/adapter/ratelimit"
	"github.com/bornholm/darkroom/internal/config"
	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/bornholm/darkroom/internal/storage"
	"github.com/pkg/errors"
)

var getAssetStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.AssetStore, error) {
	store, err := storage.NewAssetStore(conf.Storage.Assets.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "could not create asset store")
	}

	return ratelimit.NewAssetStore(store,
		ratelimit.WithMaxRPS(conf.Reconcile.MaxRPS),
		ratelimit.WithTimeout(conf.Reconcile.RequestTimeout),
	), nil
})
