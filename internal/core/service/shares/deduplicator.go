package shares

import (
	"context"
	"log/slog"

	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/bornholm/darkroom/internal/metrics"
	"github.com/bornholm/darkroom/internal/util"
	"github.com/pkg/errors"
)

// Deduplicator collapses the share links of each gallery to a single one.
type Deduplicator struct {
	store           port.ShareLinkStore
	fetchPageSize   int
	deleteChunkSize int
	logger          *slog.Logger
}

// Preview fetches every share link and resolves the duplicates without
// modifying the store.
func (d *Deduplicator) Preview(ctx context.Context) (*Resolution, error) {
	links, err := d.fetchAll(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	resolution := Resolve(links)

	metrics.DuplicateShareLinks.Set(float64(len(resolution.Remove)))

	d.logger.InfoContext(ctx, "share links resolved",
		slog.Int("links", len(links)),
		slog.Int("galleries", len(resolution.Groups)),
		slog.Int("duplicates", len(resolution.Remove)),
	)

	return &resolution, nil
}

// Apply deletes the share links marked for removal, chunk by chunk.
// The first failing chunk aborts the operation, the number of links
// deleted so far is returned along with the error.
func (d *Deduplicator) Apply(ctx context.Context, resolution *Resolution) (int, error) {
	if resolution == nil {
		return 0, nil
	}

	deleted := 0

	for _, chunk := range util.Chunk(resolution.RemovedIDs(), d.deleteChunkSize) {
		if err := d.store.DeleteShareLinks(ctx, chunk...); err != nil {
			return deleted, errors.Wrapf(err, "could not delete share links (%d deleted so far)", deleted)
		}

		deleted += len(chunk)
		metrics.RemovedShareLinks.Add(float64(len(chunk)))

		d.logger.DebugContext(ctx, "share links deleted", slog.Int("chunk", len(chunk)), slog.Int("deleted", deleted))
	}

	metrics.DuplicateShareLinks.Set(0)

	d.logger.InfoContext(ctx, "duplicate share links removed", slog.Int("deleted", deleted))

	return deleted, nil
}

func (d *Deduplicator) fetchAll(ctx context.Context) ([]model.PersistedShareLink, error) {
	links := make([]model.PersistedShareLink, 0)
	limit := d.fetchPageSize

	for page := 0; ; page++ {
		batch, err := d.store.QueryShareLinks(ctx, port.QueryShareLinksOptions{
			Page:  &page,
			Limit: &limit,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "could not query share links page %d", page)
		}

		links = append(links, batch...)

		if len(batch) < limit {
			break
		}
	}

	return links, nil
}

func NewDeduplicator(store port.ShareLinkStore, funcs ...OptionFunc) *Deduplicator {
	opts := NewOptions(funcs...)

	return &Deduplicator{
		store:           store,
		fetchPageSize:   opts.FetchPageSize,
		deleteChunkSize: opts.DeleteChunkSize,
		logger:          opts.Logger,
	}
}
