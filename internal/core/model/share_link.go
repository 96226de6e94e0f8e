package model

import (
	"time"

	"github.com/rs/xid"
)

type ShareLinkID string

func NewShareLinkID() ShareLinkID {
	return ShareLinkID(xid.New().String())
}

type GalleryID string

// ShareLink is an access grant to the content of a gallery.
// A gallery can own many share links, the maintenance tooling
// collapses them to a single canonical one.
type ShareLink interface {
	WithID[ShareLinkID]

	GalleryID() GalleryID
	Token() string
	Active() bool
	// ExpiresAt returns nil when the link never expires
	ExpiresAt() *time.Time
}

type PersistedShareLink interface {
	ShareLink
	WithLifecycle
}

type BaseShareLink struct {
	id        ShareLinkID
	galleryID GalleryID
	token     string
	active    bool
	expiresAt *time.Time
	createdAt time.Time
	updatedAt time.Time
}

// ID implements ShareLink.
func (l *BaseShareLink) ID() ShareLinkID {
	return l.id
}

// GalleryID implements ShareLink.
func (l *BaseShareLink) GalleryID() GalleryID {
	return l.galleryID
}

// Token implements ShareLink.
func (l *BaseShareLink) Token() string {
	return l.token
}

// Active implements ShareLink.
func (l *BaseShareLink) Active() bool {
	return l.active
}

// ExpiresAt implements ShareLink.
func (l *BaseShareLink) ExpiresAt() *time.Time {
	return l.expiresAt
}

// CreatedAt implements PersistedShareLink.
func (l *BaseShareLink) CreatedAt() time.Time {
	return l.createdAt
}

// UpdatedAt implements PersistedShareLink.
func (l *BaseShareLink) UpdatedAt() time.Time {
	return l.updatedAt
}

type ShareLinkOptionFunc func(l *BaseShareLink)

func WithShareLinkID(id ShareLinkID) ShareLinkOptionFunc {
	return func(l *BaseShareLink) {
		l.id = id
	}
}

func WithShareLinkToken(token string) ShareLinkOptionFunc {
	return func(l *BaseShareLink) {
		l.token = token
	}
}

func WithShareLinkActive(active bool) ShareLinkOptionFunc {
	return func(l *BaseShareLink) {
		l.active = active
	}
}

func WithShareLinkExpiresAt(expiresAt time.Time) ShareLinkOptionFunc {
	return func(l *BaseShareLink) {
		l.expiresAt = &expiresAt
	}
}

func WithShareLinkCreatedAt(createdAt time.Time) ShareLinkOptionFunc {
	return func(l *BaseShareLink) {
		l.createdAt = createdAt
		if l.updatedAt.Before(createdAt) {
			l.updatedAt = createdAt
		}
	}
}

func NewShareLink(galleryID GalleryID, funcs ...ShareLinkOptionFunc) *BaseShareLink {
	now := time.Now().UTC()

	link := &BaseShareLink{
		id:        NewShareLinkID(),
		galleryID: galleryID,
		token:     xid.New().String(),
		active:    true,
		createdAt: now,
		updatedAt: now,
	}

	for _, fn := range funcs {
		fn(link)
	}

	return link
}

// IsExpired returns true if the link has an expiration date before the given time
func IsExpired(link ShareLink, now time.Time) bool {
	expiresAt := link.ExpiresAt()
	if expiresAt == nil {
		return false
	}

	return expiresAt.Before(now)
}

var _ PersistedShareLink = &BaseShareLink{}
