package shares

import "log/slog"

const (
	DefaultFetchPageSize   = 500
	DefaultDeleteChunkSize = 500
)

type Options struct {
	FetchPageSize   int
	DeleteChunkSize int
	Logger          *slog.Logger
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		FetchPageSize:   DefaultFetchPageSize,
		DeleteChunkSize: DefaultDeleteChunkSize,
		Logger:          slog.Default(),
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithFetchPageSize(size int) OptionFunc {
	return func(opts *Options) {
		if size > 0 {
			opts.FetchPageSize = size
		}
	}
}

func WithDeleteChunkSize(size int) OptionFunc {
	return func(opts *Options) {
		if size > 0 {
			opts.DeleteChunkSize = size
		}
	}
}

func WithLogger(logger *slog.Logger) OptionFunc {
	return func(opts *Options) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}
