package config

import "time"

type Reconcile struct {
	PageSize       int           `env:"PAGE_SIZE,expand" envDefault:"500"`
	ChunkSize      int           `env:"CHUNK_SIZE,expand" envDefault:"100"`
	ConfirmEmpty   bool          `env:"CONFIRM_EMPTY,expand" envDefault:"false"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,expand" envDefault:"30s"`
	// MaxRPS limits the calls issued to the asset store, 0 disables the limit
	MaxRPS float64 `env:"MAX_RPS,expand" envDefault:"0"`
}

type Shares struct {
	DeleteChunkSize int `env:"DELETE_CHUNK_SIZE,expand" envDefault:"500"`
	FetchPageSize   int `env:"FETCH_PAGE_SIZE,expand" envDefault:"500"`
}
