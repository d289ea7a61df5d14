// ABOUTME: Bounded worker pool for per-URL batch processing
// ABOUTME: Runs a fixed number of workers over a job queue and keeps results in input order

package workers

import (
	"context"
	"sync"
)

// DefaultMaxWorkers is used when a non-positive worker count is given
const DefaultMaxWorkers = 10

// Pool processes items with at most MaxWorkers concurrent calls
type Pool[T, R any] struct {
	// MaxWorkers bounds concurrent calls to Process
	MaxWorkers int

	// Process handles a single item
	Process func(ctx context.Context, item T) R

	// Cancelled builds the result for an item that was never started
	// because ctx was done
	Cancelled func(item T, err error) R
}

type job struct {
	index int
}

// Run processes every item and returns the results in the order of items
func (p Pool[T, R]) Run(ctx context.Context, items []T) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}

	workers := p.MaxWorkers
	if workers <= 0 {
		workers = DefaultMaxWorkers
	}
	if workers > len(items) {
		workers = len(items)
	}

	jobQueue := make(chan job)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobQueue {
				results[j.index] = p.Process(ctx, items[j.index])
			}
		}()
	}

	next := 0
dispatch:
	for ; next < len(items); next++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case jobQueue <- job{index: next}:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobQueue)
	wg.Wait()

	for i := next; i < len(items); i++ {
		results[i] = p.Cancelled(items[i], ctx.Err())
	}
	return results
}
