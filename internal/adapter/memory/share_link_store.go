package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/pkg/errors"
)

type ShareLinkStore struct {
	links map[model.ShareLinkID]*model.BaseShareLink
	mutex sync.RWMutex
}

// QueryShareLinks implements port.ShareLinkStore.
func (s *ShareLinkStore) QueryShareLinks(ctx context.Context, opts port.QueryShareLinksOptions) ([]model.PersistedShareLink, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	matches := make([]*model.BaseShareLink, 0, len(s.links))
	for _, l := range s.links {
		if opts.GalleryID != nil && l.GalleryID() != *opts.GalleryID {
			continue
		}

		matches = append(matches, l)
	}

	slices.SortFunc(matches, func(a, b *model.BaseShareLink) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		return strings.Compare(string(a.ID()), string(b.ID()))
	})

	if opts.Limit != nil {
		page := 0
		if opts.Page != nil {
			page = *opts.Page
		}

		start := min(page**opts.Limit, len(matches))
		end := min(start+*opts.Limit, len(matches))
		matches = matches[start:end]
	}

	links := make([]model.PersistedShareLink, 0, len(matches))
	for _, l := range matches {
		links = append(links, l)
	}

	return links, nil
}

// SaveShareLink implements port.ShareLinkStore.
func (s *ShareLinkStore) SaveShareLink(ctx context.Context, link model.ShareLink) (model.PersistedShareLink, error) {
	if link.ID() == "" {
		return nil, errors.New("share link id is empty")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now().UTC()
	createdAt := now

	if existing, exists := s.links[link.ID()]; exists {
		createdAt = existing.CreatedAt()
	} else if persisted, ok := link.(model.PersistedShareLink); ok && !persisted.CreatedAt().IsZero() {
		createdAt = persisted.CreatedAt()
	}

	funcs := []model.ShareLinkOptionFunc{
		model.WithShareLinkID(link.ID()),
		model.WithShareLinkToken(link.Token()),
		model.WithShareLinkActive(link.Active()),
		model.WithShareLinkCreatedAt(createdAt),
	}

	if expiresAt := link.ExpiresAt(); expiresAt != nil {
		funcs = append(funcs, model.WithShareLinkExpiresAt(*expiresAt))
	}

	stored := model.NewShareLink(link.GalleryID(), funcs...)
	s.links[stored.ID()] = stored

	return stored, nil
}

// DeleteShareLinks implements port.ShareLinkStore.
func (s *ShareLinkStore) DeleteShareLinks(ctx context.Context, ids ...model.ShareLinkID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, id := range ids {
		delete(s.links, id)
	}

	return nil
}

func NewShareLinkStore() *ShareLinkStore {
	return &ShareLinkStore{
		links: make(map[model.ShareLinkID]*model.BaseShareLink),
	}
}

var _ port.ShareLinkStore = &ShareLinkStore{}
