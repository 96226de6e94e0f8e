package setup

import (
	"context"
	"log/slog"

	"github.com/bornholm/darkroom/internal/config"
	"github.com/bornholm/darkroom/internal/core/service/shares"
	"github.com/pkg/errors"
)

var getShareDeduplicatorFromConfig = createFromConfigOnce(NewShareDeduplicatorFromConfig)

func NewShareDeduplicatorFromConfig(ctx context.Context, conf *config.Config) (*shares.Deduplicator, error) {
	store, err := getShareLinkStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create share link store")
	}

	deduplicator := shares.NewDeduplicator(store,
		shares.WithFetchPageSize(conf.Shares.FetchPageSize),
		shares.WithDeleteChunkSize(conf.Shares.DeleteChunkSize),
		shares.WithLogger(slog.Default()),
	)

	return deduplicator, nil
}
