package gorm

import (
	"time"

	"github.com/bornholm/darkroom/internal/core/model"
)

type ShareLink struct {
	ID string `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	GalleryID string `gorm:"index"`
	Token     string `gorm:"unique"`
	IsActive  bool
	ExpiresAt *time.Time
}

type wrappedShareLink struct {
	l *ShareLink
}

// ID implements [model.ShareLink].
func (w *wrappedShareLink) ID() model.ShareLinkID {
	return model.ShareLinkID(w.l.ID)
}

// GalleryID implements [model.ShareLink].
func (w *wrappedShareLink) GalleryID() model.GalleryID {
	return model.GalleryID(w.l.GalleryID)
}

// Token implements [model.ShareLink].
func (w *wrappedShareLink) Token() string {
	return w.l.Token
}

// Active implements [model.ShareLink].
func (w *wrappedShareLink) Active() bool {
	return w.l.IsActive
}

// ExpiresAt implements [model.ShareLink].
func (w *wrappedShareLink) ExpiresAt() *time.Time {
	return w.l.ExpiresAt
}

// CreatedAt implements [model.PersistedShareLink].
func (w *wrappedShareLink) CreatedAt() time.Time {
	return w.l.CreatedAt
}

// UpdatedAt implements [model.PersistedShareLink].
func (w *wrappedShareLink) UpdatedAt() time.Time {
	return w.l.UpdatedAt
}

var _ model.PersistedShareLink = &wrappedShareLink{}

func fromShareLink(l model.ShareLink) *ShareLink {
	shareLink := &ShareLink{
		ID:        string(l.ID()),
		GalleryID: string(l.GalleryID()),
		Token:     l.Token(),
		IsActive:  l.Active(),
		ExpiresAt: l.ExpiresAt(),
	}

	if persisted, ok := l.(model.PersistedShareLink); ok {
		shareLink.CreatedAt = persisted.CreatedAt()
		shareLink.UpdatedAt = persisted.UpdatedAt()
	}

	return shareLink
}
