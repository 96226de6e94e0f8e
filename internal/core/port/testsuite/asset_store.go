package testsuite

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/pkg/errors"
)

// AssetStoreFactory returns a store already holding the given assets
type AssetStoreFactory func(t *testing.T, ids ...model.AssetID) (port.AssetStore, error)

func TestAssetStore(t *testing.T, factory AssetStoreFactory) {
	type testCase struct {
		Name   string
		Assets []model.AssetID
		Run    func(t *testing.T, ctx context.Context, store port.AssetStore) error
	}

	var testCases []testCase = []testCase{
		{
			Name:   "ListBySegmentPrefix",
			Assets: []model.AssetID{"galleries/4/a.jpg", "galleries/4/raw/b.nef", "galleries/42/c.jpg", "portfolio/d.jpg"},
			Run: func(t *testing.T, ctx context.Context, store port.AssetStore) error {
				ids, err := store.ListByPrefix(ctx, "galleries/4", 10)
				if err != nil {
					return errors.WithStack(err)
				}

				slices.Sort(ids)

				expected := []model.AssetID{"galleries/4/a.jpg", "galleries/4/raw/b.nef"}

				if !slices.Equal(expected, ids) {
					t.Errorf("ids: expected %v, got %v", expected, ids)
				}

				return nil
			},
		},
		{
			Name:   "ListRespectsLimit",
			Assets: numberedAssets("galleries/7", 12),
			Run: func(t *testing.T, ctx context.Context, store port.AssetStore) error {
				ids, err := store.ListByPrefix(ctx, "galleries/7", 5)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 5, len(ids); e != g {
					t.Errorf("len(ids): expected %d, got %d", e, g)
				}

				return nil
			},
		},
		{
			Name:   "DeleteBatchIsIdempotent",
			Assets: numberedAssets("galleries/7", 3),
			Run: func(t *testing.T, ctx context.Context, store port.AssetStore) error {
				batch := []model.AssetID{"galleries/7/photo-00.jpg", "galleries/7/unknown.jpg"}

				for i := 0; i < 2; i++ {
					if err := store.DeleteBatch(ctx, batch); err != nil {
						return errors.Wrapf(err, "delete attempt #%d", i)
					}
				}

				ids, err := store.ListByPrefix(ctx, "galleries/7", 10)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 2, len(ids); e != g {
					t.Errorf("len(ids): expected %d, got %d", e, g)
				}

				return nil
			},
		},
		{
			Name:   "DeleteContainerOnceEmpty",
			Assets: append(numberedAssets("galleries/7", 3), "galleries/70/cover.jpg"),
			Run: func(t *testing.T, ctx context.Context, store port.AssetStore) error {
				if err := store.DeleteContainer(ctx, "galleries/7"); err == nil {
					t.Errorf("DeleteContainer(): expected an error on a non empty container")
				}

				ids, err := store.ListByPrefix(ctx, "galleries/7", 10)
				if err != nil {
					return errors.WithStack(err)
				}

				if err := store.DeleteBatch(ctx, ids); err != nil {
					return errors.WithStack(err)
				}

				if err := store.DeleteContainer(ctx, "galleries/7"); err != nil {
					return errors.WithStack(err)
				}

				ids, err = store.ListByPrefix(ctx, "galleries/70", 10)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 1, len(ids); e != g {
					t.Errorf("len(ids): expected %d, got %d", e, g)
				}

				return nil
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctx := context.Background()

			store, err := factory(t, tc.Assets...)
			if err != nil {
				t.Fatalf("could not create store: %+v", errors.WithStack(err))
			}

			if err := tc.Run(t, ctx, store); err != nil {
				t.Fatalf("could not run test: %+v", errors.WithStack(err))
			}
		})
	}
}

func numberedAssets(prefix string, total int) []model.AssetID {
	ids := make([]model.AssetID, 0, total)
	for i := 0; i < total; i++ {
		ids = append(ids, model.AssetID(fmt.Sprintf("%s/photo-%02d.jpg", prefix, i)))
	}
	return ids
}
