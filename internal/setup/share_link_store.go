package setup

import (
	"context"

	gormAdapter "github.com/bornholm/darkroom/internal/adapter/gorm"
	"github.com/bornholm/darkroom/internal/config"
	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/pkg/errors"
)

var getShareLinkStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.ShareLinkStore, error) {
	db, err := getGormDatabaseFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return gormAdapter.NewStore(db), nil
})
