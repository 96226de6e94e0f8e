package reconcile

import (
	"log/slog"
)

const (
	DefaultPageSize  = 500
	DefaultChunkSize = 100
)

type Options struct {
	// PageSize is the maximum number of identifiers requested per listing call
	PageSize int
	// ChunkSize is the maximum number of identifiers sent per delete call
	ChunkSize int
	// ConfirmEmpty disables the short page shortcut: the reconciler
	// always lists the prefix again until it gets an empty page
	ConfirmEmpty bool
	Logger       *slog.Logger
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		PageSize:     DefaultPageSize,
		ChunkSize:    DefaultChunkSize,
		ConfirmEmpty: false,
		Logger:       slog.Default(),
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithPageSize(size int) OptionFunc {
	return func(opts *Options) {
		if size > 0 {
			opts.PageSize = size
		}
	}
}

func WithChunkSize(size int) OptionFunc {
	return func(opts *Options) {
		if size > 0 {
			opts.ChunkSize = size
		}
	}
}

func WithConfirmEmpty(confirmEmpty bool) OptionFunc {
	return func(opts *Options) {
		opts.ConfirmEmpty = confirmEmpty
	}
}

func WithLogger(logger *slog.Logger) OptionFunc {
	return func(opts *Options) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}
