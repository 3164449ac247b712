package morpho

import (
	"log/slog"

	"github.com/gogpu/morpho/internal/anchor"
	"github.com/gogpu/morpho/internal/extremum"
	"github.com/gogpu/morpho/internal/parallel"
)

// Engine runs morphological operations.
//
// All scratch state (histograms, line buffers, padded images, fronts) is
// allocated per call, so an Engine is safe for concurrent use. The zero value
// is not usable; call New.
type Engine struct {
	log     *slog.Logger
	workers int
	pool    *parallel.Pool
}

// New creates an engine.
//
// Example:
//
//	eng := morpho.New(morpho.WithWorkers(4))
//	defer eng.Close()
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}

	e := &Engine{log: o.logger, workers: o.workers}
	if o.workers > 1 {
		e.pool = parallel.NewPool(o.workers)
	}
	e.log.Debug("morpho: engine created", "workers", e.workers)
	return e
}

// Workers returns the number of goroutines an operation may use.
func (e *Engine) Workers() int {
	return e.workers
}

// Close stops the worker pool. Operations called afterwards run on the
// caller. Close is safe to call multiple times.
func (e *Engine) Close() {
	if e.pool != nil {
		e.pool.Close()
	}
}

// lineFilters hands out one anchor filter per worker.
type lineFilters struct {
	filters []*anchor.Filter
	maxLen  int
}

func newLineFilters(workers, maxLen int) *lineFilters {
	return &lineFilters{filters: make([]*anchor.Filter, max(workers, 1)), maxLen: maxLen}
}

func (lf *lineFilters) get(worker int) *anchor.Filter {
	f := lf.filters[worker]
	if f == nil {
		f = anchor.NewFilter(lf.maxLen)
		lf.filters[worker] = f
	}
	return f
}

func (lf *lineFilters) rebuilds() int {
	n := 0
	for _, f := range lf.filters {
		if f != nil {
			n += f.Rebuilds()
		}
	}
	return n
}

// windows hands out one histogram per worker.
type windows struct {
	wins   []*extremum.Window
	newWin func() *extremum.Window
}

func (w *windows) get(worker int) *extremum.Window {
	win := w.wins[worker]
	if win == nil {
		win = w.newWin()
		w.wins[worker] = win
	}
	return win
}

// split runs fn over [0, n) on the pool, or in one piece on the caller.
// Pieces are contiguous and disjoint.
func (e *Engine) split(n, parts int, fn func(worker, lo, hi int)) {
	if e.pool == nil || parts <= 1 || n <= 1 {
		fn(0, 0, n)
		return
	}
	e.pool.Ranges(n, parts, fn)
}

// lineParts is the number of pieces a pass over n lines is cut into.
func (e *Engine) lineParts(n int) int {
	if e.pool == nil {
		return 1
	}
	return min(n, e.workers*4)
}
