package reconcile

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bornholm/darkroom/internal/core/model"
	"github.com/bornholm/darkroom/internal/core/port"
	"github.com/bornholm/darkroom/internal/metrics"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

var ErrEmptyPrefix = errors.New("empty prefix")

type State int

const (
	StateListing State = iota
	StateDeleting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateListing:
		return "listing"
	case StateDeleting:
		return "deleting"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

type Result struct {
	TotalDeleted     int
	Iterations       int
	FailedChunks     int
	ContainerRemoved bool
}

type ContainerRemover interface {
	DeleteContainer(ctx context.Context, prefix string) error
}

// FolderReconciler removes every asset stored under a prefix,
// page after page, then the prefix itself.
type FolderReconciler struct {
	lister       Lister
	deleter      Deleter
	remover      ContainerRemover
	pageSize     int
	confirmEmpty bool
	logger       *slog.Logger
}

// run holds the state of a single reconciliation
type run struct {
	prefix string
	state  State
	page   []model.AssetID
	result Result
}

// Reconcile drives the reconciliation of the given prefix to completion.
// A listing failure aborts the run: the partial result is returned along with the error.
func (r *FolderReconciler) Reconcile(ctx context.Context, prefix string) (*Result, error) {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return nil, errors.WithStack(ErrEmptyPrefix)
	}

	ctx = slogx.WithAttrs(ctx, slog.String("prefix", prefix))

	current := &run{
		prefix: prefix,
		state:  StateListing,
	}

	r.logger.InfoContext(ctx, "starting folder reconciliation", slog.Int("pageSize", r.pageSize))

	for current.state != StateDone {
		next, err := r.step(ctx, current)
		if err != nil {
			metrics.FolderReconciliations.WithLabelValues(metrics.StatusFailed).Inc()
			return &current.result, errors.WithStack(err)
		}

		current.state = next
	}

	r.removeContainer(ctx, current)

	metrics.FolderReconciliations.WithLabelValues(metrics.StatusSucceeded).Inc()

	r.logger.InfoContext(ctx, "folder reconciliation completed",
		slog.Int("deleted", current.result.TotalDeleted),
		slog.Int("iterations", current.result.Iterations),
		slog.Int("failedChunks", current.result.FailedChunks),
		slog.Bool("containerRemoved", current.result.ContainerRemoved),
	)

	return &current.result, nil
}

func (r *FolderReconciler) step(ctx context.Context, current *run) (State, error) {
	switch current.state {
	case StateListing:
		return r.list(ctx, current)
	case StateDeleting:
		return r.delete(ctx, current), nil
	default:
		return StateDone, nil
	}
}

func (r *FolderReconciler) list(ctx context.Context, current *run) (State, error) {
	current.result.Iterations++
	metrics.ListingIterations.Inc()

	page, err := r.lister.Next(ctx, current.prefix)
	if err != nil {
		return StateListing, errors.WithStack(err)
	}

	current.page = page

	r.logger.DebugContext(ctx, "listed assets", slog.Int("iteration", current.result.Iterations), slog.Int("count", len(page)))

	if len(page) == 0 {
		return StateDone, nil
	}

	return StateDeleting, nil
}

func (r *FolderReconciler) delete(ctx context.Context, current *run) State {
	page := current.page
	current.page = nil

	batch := r.deleter.Delete(ctx, page)

	current.result.TotalDeleted += batch.Deleted
	current.result.FailedChunks += batch.FailedChunks

	r.logger.InfoContext(ctx, "deleted page",
		slog.Int("iteration", current.result.Iterations),
		slog.Int("deleted", batch.Deleted),
		slog.Int("chunks", batch.Chunks),
		slog.Int("failedChunks", batch.FailedChunks),
		slog.Int("totalDeleted", current.result.TotalDeleted),
	)

	// Nothing from this page could be deleted, listing again would return the same page
	if batch.Deleted == 0 {
		r.logger.WarnContext(ctx, "no progress on page, stopping", slog.Int("pageSize", len(page)))
		return StateDone
	}

	if !r.confirmEmpty && len(page) < r.pageSize {
		return StateDone
	}

	return StateListing
}

func (r *FolderReconciler) removeContainer(ctx context.Context, current *run) {
	if err := r.remover.DeleteContainer(ctx, current.prefix); err != nil {
		r.logger.WarnContext(ctx, "could not remove container", slog.String("error", err.Error()))
		r.logger.DebugContext(ctx, "container removal failure", slogx.Error(err))
		current.result.ContainerRemoved = false
		return
	}

	current.result.ContainerRemoved = true
}

func NewFolderReconciler(store port.AssetStore, funcs ...OptionFunc) *FolderReconciler {
	opts := NewOptions(funcs...)

	if limits, ok := store.(port.AssetStoreLimits); ok {
		if limit := limits.MaxPageSize(); limit > 0 && opts.PageSize > limit {
			opts.PageSize = limit
		}
		if limit := limits.MaxBatchSize(); limit > 0 && opts.ChunkSize > limit {
			opts.ChunkSize = limit
		}
	}

	return newFolderReconciler(
		NewStoreLister(store, opts.PageSize),
		NewBatchDeleter(store, opts.ChunkSize, opts.Logger),
		store,
		opts,
	)
}

func newFolderReconciler(lister Lister, deleter Deleter, remover ContainerRemover, opts *Options) *FolderReconciler {
	return &FolderReconciler{
		lister:       lister,
		deleter:      deleter,
		remover:      remover,
		pageSize:     opts.PageSize,
		confirmEmpty: opts.ConfirmEmpty,
		logger:       opts.Logger,
	}
}
