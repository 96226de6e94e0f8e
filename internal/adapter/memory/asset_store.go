package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/pkg/errors"
)

var ErrContainerNotEmpty = errors.New("container not empty")

// AssetStore keeps asset identifiers in memory.
// It behaves like a remote media store: deletes are idempotent and
// listing always returns identifiers in lexicographic order.
type AssetStore struct {
	assets       map[model.AssetID]model.RemoteAsset
	containers   map[string]struct{}
	maxPageSize  int
	maxBatchSize int
	mutex        sync.RWMutex
}

// ListByPrefix implements port.AssetStore.
func (s *AssetStore) ListByPrefix(ctx context.Context, prefix string, limit int) ([]model.AssetID, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	ids := make([]model.AssetID, 0)
	for id, asset := range s.assets {
		if !asset.HasPrefix(prefix) {
			continue
		}

		ids = append(ids, id)
	}

	slices.Sort(ids)

	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	return ids, nil
}

// DeleteBatch implements port.AssetStore.
func (s *AssetStore) DeleteBatch(ctx context.Context, ids []model.AssetID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, id := range ids {
		delete(s.assets, id)
	}

	return nil
}

// DeleteContainer implements port.AssetStore.
func (s *AssetStore) DeleteContainer(ctx context.Context, prefix string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	prefix = strings.Trim(prefix, "/")

	if _, exists := s.containers[prefix]; !exists {
		return errors.WithStack(port.ErrNotFound)
	}

	for _, asset := range s.assets {
		if asset.HasPrefix(prefix) {
			return errors.Wrapf(ErrContainerNotEmpty, "container '%s'", prefix)
		}
	}

	delete(s.containers, prefix)

	return nil
}

// MaxPageSize implements port.AssetStoreLimits.
func (s *AssetStore) MaxPageSize() int {
	return s.maxPageSize
}

// MaxBatchSize implements port.AssetStoreLimits.
func (s *AssetStore) MaxBatchSize() int {
	return s.maxBatchSize
}

// Put stores the given assets, registering their containers
func (s *AssetStore) Put(ids ...model.AssetID) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, id := range ids {
		asset := model.NewRemoteAsset(id)
		s.assets[id] = asset

		for prefix := asset.Prefix; prefix != ""; {
			s.containers[prefix] = struct{}{}
			idx := strings.LastIndex(prefix, "/")
			if idx < 0 {
				break
			}
			prefix = prefix[:idx]
		}
	}
}

// Len returns the number of stored assets
func (s *AssetStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.assets)
}

type AssetStoreOptionFunc func(s *AssetStore)

func WithMaxPageSize(size int) AssetStoreOptionFunc {
	return func(s *AssetStore) {
		s.maxPageSize = size
	}
}

func WithMaxBatchSize(size int) AssetStoreOptionFunc {
	return func(s *AssetStore) {
		s.maxBatchSize = size
	}
}

func NewAssetStore(funcs ...AssetStoreOptionFunc) *AssetStore {
	store := &AssetStore{
		assets:     make(map[model.AssetID]model.RemoteAsset),
		containers: make(map[string]struct{}),
	}

	for _, fn := range funcs {
		fn(store)
	}

	return store
}

var (
	_ port.AssetStore       = &AssetStore{}
	_ port.AssetStoreLimits = &AssetStore{}
)
