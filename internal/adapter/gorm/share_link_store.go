package gorm

import (
	"context"

	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// QueryShareLinks implements [port.ShareLinkStore].
func (s *Store) QueryShareLinks(ctx context.Context, opts port.QueryShareLinksOptions) ([]model.PersistedShareLink, error) {
	var shareLinks []*ShareLink

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		query := db.Model(&ShareLink{}).Order("created_at asc").Order("id asc")

		if opts.GalleryID != nil {
			query = query.Where("gallery_id = ?", string(*opts.GalleryID))
		}

		if opts.Page != nil {
			limit := 10
			if opts.Limit != nil {
				limit = *opts.Limit
			}
			query = query.Offset(*opts.Page * limit)
		}

		if opts.Limit != nil {
			query = query.Limit(*opts.Limit)
		}

		if err := query.Find(&shareLinks).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	wrappedShareLinks := make([]model.PersistedShareLink, 0, len(shareLinks))
	for _, l := range shareLinks {
		wrappedShareLinks = append(wrappedShareLinks, &wrappedShareLink{l})
	}

	return wrappedShareLinks, nil
}

// SaveShareLink implements [port.ShareLinkStore].
func (s *Store) SaveShareLink(ctx context.Context, link model.ShareLink) (model.PersistedShareLink, error) {
	if link.ID() == "" {
		return nil, errors.WithStack(ErrMissingID)
	}

	var saved ShareLink

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		shareLink := fromShareLink(link)

		var existing ShareLink
		if err := db.First(&existing, "id = ?", shareLink.ID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.WithStack(err)
		}

		if existing.ID != "" {
			if err := db.Model(&existing).Updates(map[string]any{
				"gallery_id": shareLink.GalleryID,
				"token":      shareLink.Token,
				"is_active":  shareLink.IsActive,
				"expires_at": shareLink.ExpiresAt,
			}).Error; err != nil {
				return errors.WithStack(err)
			}
		} else {
			if err := db.Create(shareLink).Error; err != nil {
				return errors.WithStack(err)
			}
		}

		if err := db.First(&saved, "id = ?", shareLink.ID).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedShareLink{&saved}, nil
}

// DeleteShareLinks implements [port.ShareLinkStore].
func (s *Store) DeleteShareLinks(ctx context.Context, ids ...model.ShareLinkID) error {
	if len(ids) == 0 {
		return nil
	}

	rawIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		rawIDs = append(rawIDs, string(id))
	}

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Delete(&ShareLink{}, "id IN ?", rawIDs).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

var _ port.ShareLinkStore = &Store{}
