// Package parallel runs independent line and band tasks on a fixed pool of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Task is a unit of work. worker identifies the goroutine running it and is
// in [0, Workers()); a goroutine runs one task at a time, so per-worker
// scratch state indexed by worker is never shared within one batch.
type Task func(worker int)

// Pool is a pool of goroutines for splitting a filter pass.
//
// Each worker has its own queue and steals from the others when it runs dry,
// which balances bands of uneven cost.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int

	// queues holds per-worker task queues.
	queues []chan Task

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	running atomic.Bool

	// fallback serializes tasks run on callers after Close.
	fallback sync.Mutex
}

// NewPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &Pool{
		workers: workers,
		queues:  make([]chan Task, workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan Task, queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own, id)
			return

		case task := <-own:
			task(id)

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen(id)
				continue
			}
			select {
			case <-p.done:
				p.drain(own, id)
				return
			case task := <-own:
				task(id)
			}
		}
	}
}

// drain runs what is left in a queue at shutdown.
func (p *Pool) drain(queue chan Task, id int) {
	for {
		select {
		case task := <-queue:
			task(id)
		default:
			return
		}
	}
}

// steal takes a task from another worker's queue, or returns nil.
func (p *Pool) steal(id int) Task {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case task := <-p.queues[i]:
			return task
		default:
		}
	}
	return nil
}

// Run calls fn(worker, i) for every i in [0, n) and waits for all calls to
// return. On a closed pool the calls run sequentially on the caller with
// worker 0.
func (p *Pool) Run(n int, fn func(worker, i int)) {
	if n <= 0 {
		return
	}
	if !p.running.Load() {
		p.inline(func(int) {
			for i := range n {
				fn(0, i)
			}
		})
		return
	}

	var pending sync.WaitGroup
	pending.Add(n)
	for i := range n {
		task := func(worker int) {
			defer pending.Done()
			fn(worker, i)
		}
		select {
		case p.queues[i%p.workers] <- task:
		case <-p.done:
			p.inline(task)
		}
	}
	if !p.running.Load() {
		// Close raced with the submission. Tasks queued after the workers
		// drained would never run.
		p.inline(func(int) {
			for _, q := range p.queues {
				p.drain(q, 0)
			}
		})
	}
	pending.Wait()
}

// inline runs task on the caller once every worker has exited. Inline tasks
// are serialized so worker 0 stays exclusive.
func (p *Pool) inline(task Task) {
	p.wg.Wait()
	p.fallback.Lock()
	defer p.fallback.Unlock()
	task(0)
}

// Ranges splits [0, n) into at most parts contiguous ranges of nearly equal
// length and calls fn(worker, lo, hi) for each of them, waiting for all.
func (p *Pool) Ranges(n, parts int, fn func(worker, lo, hi int)) {
	spans := Split(n, parts)
	p.Run(len(spans), func(worker, i int) {
		fn(worker, spans[i][0], spans[i][1])
	})
}

// Split divides [0, n) into at most parts non-empty half-open ranges whose
// lengths differ by at most one.
func Split(n, parts int) [][2]int {
	if n <= 0 {
		return nil
	}
	parts = max(1, min(parts, n))
	spans := make([][2]int, parts)
	base, extra := n/parts, n%parts
	lo := 0
	for i := range spans {
		size := base
		if i < extra {
			size++
		}
		spans[i] = [2]int{lo, lo + size}
		lo += size
	}
	return spans
}

// Close stops the workers after the queued tasks complete.
// Close is safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}
