package setup

import (
	"context"
	"log/slog"

	"github.com/bornholm/darkroom/internal/config"
	"github.com/bornholm/darkroom/internal/core/service/reconcile"
	"github.com/pkg/errors"
)

var getFolderReconcilerFromConfig = createFromConfigOnce(NewFolderReconcilerFromConfig)

func NewFolderReconcilerFromConfig(ctx context.Context, conf *config.Config) (*reconcile.FolderReconciler, error) {
	store, err := getAssetStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	reconciler := reconcile.NewFolderReconciler(store,
		reconcile.WithPageSize(conf.Reconcile.PageSize),
		reconcile.WithChunkSize(conf.Reconcile.ChunkSize),
		reconcile.WithConfirmEmpty(conf.Reconcile.ConfirmEmpty),
		reconcile.WithLogger(slog.Default()),
	)

	return reconciler, nil
}
