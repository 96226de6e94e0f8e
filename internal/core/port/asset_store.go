package port

import (
	"context"

	"github.com/bornholm/darkroom/internal/core/model"
)

// AssetStore is the capability the reconciliation core needs from a remote media store.
type AssetStore interface {
	// ListByPrefix returns at most limit identifiers currently stored under the prefix.
	// It is not a cursor: listing again after a deletion yields the remaining assets.
	ListByPrefix(ctx context.Context, prefix string, limit int) ([]model.AssetID, error)

	// DeleteBatch deletes the given assets in a single remote call.
	// Deleting an already deleted asset must not be an error.
	DeleteBatch(ctx context.Context, ids []model.AssetID) error

	// DeleteContainer removes the (presumably empty) prefix itself.
	DeleteContainer(ctx context.Context, prefix string) error
}

// AssetStoreLimits is implemented by stores enforcing remote API limits
// on page and batch sizes.
type AssetStoreLimits interface {
	MaxPageSize() int
	MaxBatchSize() int
}
