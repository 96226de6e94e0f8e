package reconcile

import (
	"context"
	"fmt"
	"sync"

	"github.com/bornholm/darkroom/internal/adapter/memory"
	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/pkg/errors"
)

var errInjected = errors.New("injected failure")

// spyStore records the calls issued to an in-memory store
// and fails the calls it is told to.
type spyStore struct {
	*memory.AssetStore

	mutex          sync.Mutex
	listCalls      int
	deleteCalls    [][]model.AssetID
	failDeletes    map[int]bool
	failAllDeletes bool
	failListAt     int
	// stuckIDs fail every delete call they are part of
	stuckIDs map[model.AssetID]bool
}

func (s *spyStore) ListByPrefix(ctx context.Context, prefix string, limit int) ([]model.AssetID, error) {
	s.mutex.Lock()
	s.listCalls++
	call := s.listCalls
	s.mutex.Unlock()

	if s.failListAt > 0 && call == s.failListAt {
		return nil, errors.WithStack(errInjected)
	}

	return s.AssetStore.ListByPrefix(ctx, prefix, limit)
}

func (s *spyStore) DeleteBatch(ctx context.Context, ids []model.AssetID) error {
	s.mutex.Lock()
	call := len(s.deleteCalls)
	s.deleteCalls = append(s.deleteCalls, append([]model.AssetID{}, ids...))
	s.mutex.Unlock()

	if s.failAllDeletes || s.failDeletes[call] {
		return errors.WithStack(errInjected)
	}

	for _, id := range ids {
		if s.stuckIDs[id] {
			return errors.Wrapf(errInjected, "asset '%s' is locked", id)
		}
	}

	return s.AssetStore.DeleteBatch(ctx, ids)
}

func newSpyStore(funcs ...memory.AssetStoreOptionFunc) *spyStore {
	return &spyStore{
		AssetStore:  memory.NewAssetStore(funcs...),
		failDeletes: make(map[int]bool),
		stuckIDs:    make(map[model.AssetID]bool),
	}
}

func seed(store *spyStore, prefix string, total int) {
	ids := make([]model.AssetID, 0, total)
	for i := 0; i < total; i++ {
		ids = append(ids, model.AssetID(fmt.Sprintf("%s/photo-%05d.jpg", prefix, i)))
	}
	store.Put(ids...)
}
