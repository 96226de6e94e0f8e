package reconcile

import (
	"context"
	"log/slog"

	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/bornholm/darkroom/internal/metrics"
	"github.com/bornholm/darkroom/internal/util"
	"github.com/bornholm/go-x/slogx"
)

type BatchResult struct {
	// Deleted is the number of identifiers covered by successful chunks
	Deleted int
	// Chunks is the number of delete calls issued
	Chunks int
	// FailedChunks is the number of delete calls that failed
	FailedChunks int
}

type Deleter interface {
	Delete(ctx context.Context, ids []model.AssetID) BatchResult
}

// BatchDeleter issues one delete call per chunk, sequentially,
// skipping the chunks the remote store rejects.
type BatchDeleter struct {
	store     port.AssetStore
	chunkSize int
	logger    *slog.Logger
}

// Delete implements Deleter.
func (d *BatchDeleter) Delete(ctx context.Context, ids []model.AssetID) BatchResult {
	var result BatchResult

	for idx, chunk := range util.Chunk(ids, d.chunkSize) {
		result.Chunks++

		if err := d.store.DeleteBatch(ctx, chunk); err != nil {
			result.FailedChunks++
			metrics.FailedDeleteChunks.Inc()

			d.logger.WarnContext(ctx, "could not delete chunk, skipping",
				slog.Int("chunk", idx),
				slog.Int("size", len(chunk)),
				slog.String("first", string(chunk[0])),
				slog.String("error", err.Error()),
			)
			d.logger.DebugContext(ctx, "chunk deletion failure", slog.Int("chunk", idx), slogx.Error(err))

			continue
		}

		result.Deleted += len(chunk)
		metrics.DeletedAssets.Add(float64(len(chunk)))

		d.logger.DebugContext(ctx, "chunk deleted", slog.Int("chunk", idx), slog.Int("size", len(chunk)))
	}

	return result
}

func NewBatchDeleter(store port.AssetStore, chunkSize int, logger *slog.Logger) *BatchDeleter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &BatchDeleter{
		store:     store,
		chunkSize: chunkSize,
		logger:    logger,
	}
}

var _ Deleter = &BatchDeleter{}
