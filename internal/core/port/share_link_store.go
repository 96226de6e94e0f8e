package port

import (
	"context"

	"github.com/bornholm/darkroom/internal/core/model"
)

type ShareLinkStore interface {
	// QueryShareLinks queries the existing share links given the query options
	QueryShareLinks(ctx context.Context, opts QueryShareLinksOptions) ([]model.PersistedShareLink, error)

	// SaveShareLink creates or updates a share link
	SaveShareLink(ctx context.Context, link model.ShareLink) (model.PersistedShareLink, error)

	// DeleteShareLinks deletes the share links with the given ids in one call.
	// Unknown ids are ignored.
	DeleteShareLinks(ctx context.Context, ids ...model.ShareLinkID) error
}

type QueryShareLinksOptions struct {
	Page  *int
	Limit *int

	GalleryID *model.GalleryID
}
