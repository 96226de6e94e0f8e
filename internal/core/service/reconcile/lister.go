package reconcile

import (
	"context"

	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/pkg/errors"
)

type Lister interface {
	// Next returns the next page of identifiers stored under the prefix
	Next(ctx context.Context, prefix string) ([]model.AssetID, error)
}

type StoreLister struct {
	store    port.AssetStore
	pageSize int
}

// Next implements Lister.
func (l *StoreLister) Next(ctx context.Context, prefix string) ([]model.AssetID, error) {
	ids, err := l.store.ListByPrefix(ctx, prefix, l.pageSize)
	if err != nil {
		return nil, errors.Wrapf(err, "could not list assets under '%s'", prefix)
	}

	// Stores are not trusted to honor the limit
	if len(ids) > l.pageSize {
		ids = ids[:l.pageSize]
	}

	return ids, nil
}

func (l *StoreLister) PageSize() int {
	return l.pageSize
}

func NewStoreLister(store port.AssetStore, pageSize int) *StoreLister {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &StoreLister{
		store:    store,
		pageSize: pageSize,
	}
}

var _ Lister = &StoreLister{}
