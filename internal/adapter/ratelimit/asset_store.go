package ratelimit

import (
	"context"
	"time"

	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// AssetStore throttles the calls issued to a remote asset store and
// bounds each of them with a timeout.
type AssetStore struct {
	store   port.AssetStore
	limiter *rate.Limiter
	timeout time.Duration
}

// ListByPrefix implements port.AssetStore.
func (s *AssetStore) ListByPrefix(ctx context.Context, prefix string, limit int) ([]model.AssetID, error) {
	ctx, cancel, err := s.acquire(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer cancel()

	ids, err := s.store.ListByPrefix(ctx, prefix, limit)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return ids, nil
}

// DeleteBatch implements port.AssetStore.
func (s *AssetStore) DeleteBatch(ctx context.Context, ids []model.AssetID) error {
	ctx, cancel, err := s.acquire(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	defer cancel()

	if err := s.store.DeleteBatch(ctx, ids); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// DeleteContainer implements port.AssetStore.
func (s *AssetStore) DeleteContainer(ctx context.Context, prefix string) error {
	ctx, cancel, err := s.acquire(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	defer cancel()

	if err := s.store.DeleteContainer(ctx, prefix); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// MaxPageSize implements port.AssetStoreLimits.
func (s *AssetStore) MaxPageSize() int {
	if limits, ok := s.store.(port.AssetStoreLimits); ok {
		return limits.MaxPageSize()
	}

	return 0
}

// MaxBatchSize implements port.AssetStoreLimits.
func (s *AssetStore) MaxBatchSize() int {
	if limits, ok := s.store.(port.AssetStoreLimits); ok {
		return limits.MaxBatchSize()
	}

	return 0
}

func (s *AssetStore) acquire(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, nil, errors.WithStack(err)
		}
	}

	if s.timeout <= 0 {
		return ctx, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)

	return ctx, cancel, nil
}

type OptionFunc func(s *AssetStore)

// WithMaxRPS limits the number of calls per second, 0 disables the limit
func WithMaxRPS(maxRPS float64) OptionFunc {
	return func(s *AssetStore) {
		if maxRPS <= 0 {
			s.limiter = nil
			return
		}

		s.limiter = rate.NewLimiter(rate.Limit(maxRPS), max(1, int(maxRPS)))
	}
}

func WithTimeout(timeout time.Duration) OptionFunc {
	return func(s *AssetStore) {
		s.timeout = timeout
	}
}

func NewAssetStore(store port.AssetStore, funcs ...OptionFunc) *AssetStore {
	s := &AssetStore{
		store: store,
	}

	for _, fn := range funcs {
		fn(s)
	}

	return s
}

var (
	_ port.AssetStore       = &AssetStore{}
	_ port.AssetStoreLimits = &AssetStore{}
)
