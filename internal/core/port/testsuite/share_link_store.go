package testsuite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/pkg/errors"
)

var referenceTime = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

func TestShareLinkStore(t *testing.T, factory func(t *testing.T) (port.ShareLinkStore, error)) {
	type testCase struct {
		Name string
		Run  func(t *testing.T, ctx context.Context, store port.ShareLinkStore) error
	}

	var testCases []testCase = []testCase{
		{
			Name: "PaginateByCreationTime",
			Run: func(t *testing.T, ctx context.Context, store port.ShareLinkStore) error {
				if err := seedShareLinks(ctx, store, 12); err != nil {
					return errors.WithStack(err)
				}

				page := 1
				limit := 5

				links, err := store.QueryShareLinks(ctx, port.QueryShareLinksOptions{
					Page:  &page,
					Limit: &limit,
				})
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 5, len(links); e != g {
					t.Fatalf("len(links): expected %d, got %d", e, g)
				}

				if e, g := model.ShareLinkID("link-05"), links[0].ID(); e != g {
					t.Errorf("links[0].ID(): expected %s, got %s", e, g)
				}

				if e, g := referenceTime.Add(5*time.Hour), links[0].CreatedAt(); !e.Equal(g) {
					t.Errorf("links[0].CreatedAt(): expected %v, got %v", e, g)
				}

				page = 2

				links, err = store.QueryShareLinks(ctx, port.QueryShareLinksOptions{
					Page:  &page,
					Limit: &limit,
				})
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 2, len(links); e != g {
					t.Errorf("len(links): expected %d, got %d", e, g)
				}

				return nil
			},
		},
		{
			Name: "FilterByGallery",
			Run: func(t *testing.T, ctx context.Context, store port.ShareLinkStore) error {
				if err := seedShareLinks(ctx, store, 12); err != nil {
					return errors.WithStack(err)
				}

				galleryID := model.GalleryID("gallery-1")

				links, err := store.QueryShareLinks(ctx, port.QueryShareLinksOptions{
					GalleryID: &galleryID,
				})
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 4, len(links); e != g {
					t.Fatalf("len(links): expected %d, got %d", e, g)
				}

				for i, l := range links {
					if e, g := galleryID, l.GalleryID(); e != g {
						t.Errorf("links[%d].GalleryID(): expected %s, got %s", i, e, g)
					}
				}

				return nil
			},
		},
		{
			Name: "DeleteIgnoresUnknownIDs",
			Run: func(t *testing.T, ctx context.Context, store port.ShareLinkStore) error {
				if err := seedShareLinks(ctx, store, 12); err != nil {
					return errors.WithStack(err)
				}

				if err := store.DeleteShareLinks(ctx, "link-01", "link-04", "unknown"); err != nil {
					return errors.WithStack(err)
				}

				links, err := store.QueryShareLinks(ctx, port.QueryShareLinksOptions{})
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 10, len(links); e != g {
					t.Errorf("len(links): expected %d, got %d", e, g)
				}

				for _, l := range links {
					if l.ID() == "link-01" || l.ID() == "link-04" {
						t.Errorf("link '%s' should have been deleted", l.ID())
					}
				}

				if err := store.DeleteShareLinks(ctx); err != nil {
					return errors.WithStack(err)
				}

				return nil
			},
		},
		{
			Name: "UpdateKeepsCreationTime",
			Run: func(t *testing.T, ctx context.Context, store port.ShareLinkStore) error {
				expiresAt := referenceTime.Add(24 * time.Hour)

				link := model.NewShareLink("gallery-1",
					model.WithShareLinkExpiresAt(expiresAt),
					model.WithShareLinkCreatedAt(referenceTime),
				)

				saved, err := store.SaveShareLink(ctx, link)
				if err != nil {
					return errors.WithStack(err)
				}

				if !saved.Active() {
					t.Errorf("saved.Active(): expected true, got false")
				}

				if saved.ExpiresAt() == nil || !saved.ExpiresAt().Equal(expiresAt) {
					t.Errorf("saved.ExpiresAt(): expected %v, got %v", expiresAt, saved.ExpiresAt())
				}

				updated, err := store.SaveShareLink(ctx, model.NewShareLink("gallery-1",
					model.WithShareLinkID(link.ID()),
					model.WithShareLinkToken(link.Token()),
					model.WithShareLinkActive(false),
				))
				if err != nil {
					return errors.WithStack(err)
				}

				if updated.Active() {
					t.Errorf("updated.Active(): expected false, got true")
				}

				if e, g := saved.CreatedAt(), updated.CreatedAt(); !e.Equal(g) {
					t.Errorf("updated.CreatedAt(): expected %v, got %v", e, g)
				}

				links, err := store.QueryShareLinks(ctx, port.QueryShareLinksOptions{})
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 1, len(links); e != g {
					t.Errorf("len(links): expected %d, got %d", e, g)
				}

				return nil
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctx := context.Background()

			store, err := factory(t)
			if err != nil {
				t.Fatalf("could not create store: %+v", errors.WithStack(err))
			}

			if err := tc.Run(t, ctx, store); err != nil {
				t.Fatalf("could not run test: %+v", errors.WithStack(err))
			}
		})
	}
}

// seedShareLinks creates total links spread over three galleries,
// link-00 being the oldest one
func seedShareLinks(ctx context.Context, store port.ShareLinkStore, total int) error {
	for i := 0; i < total; i++ {
		galleryID := model.GalleryID(fmt.Sprintf("gallery-%d", i%3))

		link := model.NewShareLink(galleryID,
			model.WithShareLinkID(model.ShareLinkID(fmt.Sprintf("link-%02d", i))),
			model.WithShareLinkActive(i%2 == 0),
			model.WithShareLinkCreatedAt(referenceTime.Add(time.Duration(i)*time.Hour)),
		)

		if _, err := store.SaveShareLink(ctx, link); err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}
