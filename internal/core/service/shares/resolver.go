package shares

import (
	"slices"
	"strings"

	"github.com/bornholm/darkroom/internal/core/model"
)

// Group holds the share links of a single gallery
type Group struct {
	GalleryID model.GalleryID
	Links     []model.PersistedShareLink // sorted by creation time
	Keep      model.PersistedShareLink
	Remove    []model.PersistedShareLink
}

// Duplicated returns true if the group holds more than one link
func (g Group) Duplicated() bool {
	return len(g.Links) > 1
}

type Resolution struct {
	Groups []Group
	Keep   []model.PersistedShareLink
	Remove []model.PersistedShareLink
}

// RemovedIDs returns the identifiers of the links to remove
func (r Resolution) RemovedIDs() []model.ShareLinkID {
	ids := make([]model.ShareLinkID, 0, len(r.Remove))
	for _, l := range r.Remove {
		ids = append(ids, l.ID())
	}
	return ids
}

// Resolve selects one canonical share link per gallery: the newest active one,
// or the newest one when none is active. It has no side effect.
func Resolve(links []model.PersistedShareLink) Resolution {
	byGallery := make(map[model.GalleryID][]model.PersistedShareLink)
	for _, l := range links {
		byGallery[l.GalleryID()] = append(byGallery[l.GalleryID()], l)
	}

	galleries := make([]model.GalleryID, 0, len(byGallery))
	for id := range byGallery {
		galleries = append(galleries, id)
	}

	slices.Sort(galleries)

	resolution := Resolution{
		Groups: make([]Group, 0, len(galleries)),
		Keep:   make([]model.PersistedShareLink, 0, len(galleries)),
		Remove: make([]model.PersistedShareLink, 0),
	}

	for _, galleryID := range galleries {
		group := resolveGroup(galleryID, byGallery[galleryID])

		resolution.Groups = append(resolution.Groups, group)
		resolution.Keep = append(resolution.Keep, group.Keep)
		resolution.Remove = append(resolution.Remove, group.Remove...)
	}

	return resolution
}

func resolveGroup(galleryID model.GalleryID, links []model.PersistedShareLink) Group {
	sorted := slices.Clone(links)
	slices.SortStableFunc(sorted, compareLinks)

	keeper := selectKeeper(sorted)

	remove := make([]model.PersistedShareLink, 0, len(sorted)-1)
	for _, l := range sorted {
		if l.ID() == keeper.ID() {
			continue
		}
		remove = append(remove, l)
	}

	return Group{
		GalleryID: galleryID,
		Links:     sorted,
		Keep:      keeper,
		Remove:    remove,
	}
}

// selectKeeper expects links sorted with compareLinks
func selectKeeper(sorted []model.PersistedShareLink) model.PersistedShareLink {
	var (
		newest       model.PersistedShareLink
		newestActive model.PersistedShareLink
	)

	for _, l := range sorted {
		if isNewer(l, newest) {
			newest = l
		}

		if l.Active() && isNewer(l, newestActive) {
			newestActive = l
		}
	}

	if newestActive != nil {
		return newestActive
	}

	return newest
}

// isNewer returns true if a should be preferred over b.
// Equal creation times are settled by the lowest identifier.
func isNewer(a, b model.PersistedShareLink) bool {
	if b == nil {
		return true
	}

	if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
		return c > 0
	}

	return strings.Compare(string(a.ID()), string(b.ID())) < 0
}

func compareLinks(a, b model.PersistedShareLink) int {
	if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
		return c
	}

	return strings.Compare(string(a.ID()), string(b.ID()))
}
