package morpho

import (
	"log/slog"
	"runtime"
)

// Option configures an Engine during creation.
//
// Example:
//
//	// Sequential, silent
//	eng := morpho.New()
//
//	// Parallel with debug logging
//	eng := morpho.New(morpho.WithWorkers(0), morpho.WithLogger(logger))
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	logger  *slog.Logger
	workers int
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		logger:  nil, // Logger() at construction
		workers: 1,
	}
}

// WithLogger sets the logger the engine writes its diagnostics to.
// Pass nil for a silent engine regardless of SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		if l == nil {
			l = newNopLogger()
		}
		o.logger = l
	}
}

// WithWorkers sets how many goroutines an operation may use. With n == 1
// (the default) operations run on the caller. n <= 0 selects GOMAXPROCS.
//
// Rows, columns and scan bands are independent, so results do not depend on
// the worker count.
func WithWorkers(n int) Option {
	return func(o *engineOptions) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}
