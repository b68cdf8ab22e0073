// Package parallel runs independent dashboard computations on a bounded set
// of goroutines.
//
// Panels over small views are cheap, so callers only fan out once a view
// reaches Threshold records. Results always come back in input order.
package parallel

import (
	"context"
	"runtime"
	"sync"
)

// Threshold is the view size from which fanning out pays for itself.
const Threshold = 1000

// WorkerPool bounds how many goroutines Map uses.
type WorkerPool struct {
	numWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewWorkerPool creates a pool of numWorkers goroutines. Zero or negative
// means one per CPU.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		numWorkers: numWorkers,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Workers returns the pool size.
func (wp *WorkerPool) Workers() int {
	return wp.numWorkers
}

// Map applies worker to every item concurrently and returns the results in
// input order. Items not started before the pool is closed keep the zero
// value of R.
func Map[T, R any](wp *WorkerPool, items []T, worker func(int, T) R) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}

	indexCh := make(chan int)

	// Each worker writes only the slots it receives, so results needs no lock.
	var wg sync.WaitGroup
	for range min(wp.numWorkers, len(items)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexCh {
				results[i] = worker(i, items[i])
			}
		}()
	}

feed:
	for i := range items {
		select {
		case <-wp.ctx.Done():
			break feed
		case indexCh <- i:
		}
	}
	close(indexCh)
	wg.Wait()

	return results
}

// Close stops the pool from starting new items. It is safe to call more
// than once.
func (wp *WorkerPool) Close() {
	wp.cancel()
}
