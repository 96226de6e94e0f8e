package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/bornholm/darkroom/internal/metrics"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

type ListShareDuplicatesResponse struct {
	Galleries  int              `json:"galleries"`
	Duplicates int              `json:"duplicates"`
	Groups     []ShareLinkGroup `json:"groups"`
}

type ShareLinkGroup struct {
	GalleryID model.GalleryID   `json:"galleryId"`
	Keep      ShareLinkHeader   `json:"keep"`
	Remove    []ShareLinkHeader `json:"remove"`
}

type ShareLinkHeader struct {
	ID        model.ShareLinkID `json:"id"`
	Active    bool              `json:"active"`
	CreatedAt time.Time         `json:"createdAt"`
	ExpiresAt *time.Time        `json:"expiresAt,omitempty"`
}

func (h *Handler) handleListShareDuplicates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	metrics.TotalShareDuplicatesRequests.Inc()

	resolution, err := h.deduplicator.Preview(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not resolve share duplicates", slogx.Error(errors.WithStack(err)))
		writeJSON(w, r, http.StatusInternalServerError, ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)})
		return
	}

	res := ListShareDuplicatesResponse{
		Galleries:  len(resolution.Groups),
		Duplicates: len(resolution.Remove),
		Groups:     make([]ShareLinkGroup, 0),
	}

	for _, g := range resolution.Groups {
		if !g.Duplicated() {
			continue
		}

		group := ShareLinkGroup{
			GalleryID: g.GalleryID,
			Keep:      toShareLinkHeader(g.Keep),
			Remove:    make([]ShareLinkHeader, 0, len(g.Remove)),
		}

		for _, l := range g.Remove {
			group.Remove = append(group.Remove, toShareLinkHeader(l))
		}

		res.Groups = append(res.Groups, group)
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toShareLinkHeader(l model.PersistedShareLink) ShareLinkHeader {
	return ShareLinkHeader{
		ID:        l.ID(),
		Active:    l.Active(),
		CreatedAt: l.CreatedAt(),
		ExpiresAt: l.ExpiresAt(),
	}
}
