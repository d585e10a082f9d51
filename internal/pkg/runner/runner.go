package runner

import (
	"context"
	"log/slog"
	"sync"
)

// Options configures how work items are run.
type Options struct {
	// Workers bounds concurrent goroutines. 0 or less runs one goroutine per item.
	Workers int
	// OnError is called when an item returns an error. If nil, errors are logged.
	OnError func(index int, err error)
}

// DefaultOptions returns options for a bounded parallel run.
func DefaultOptions() Options {
	return Options{Workers: 4}
}

// Run processes count items in parallel using fn and blocks until all finish.
// fn receives the item index; item errors go to OnError and never stop the run.
func Run(ctx context.Context, count int, fn func(ctx context.Context, index int) error, opts Options) {
	if count <= 0 {
		return
	}

	// Default error handler logs errors
	onError := opts.OnError
	if onError == nil {
		onError = func(index int, err error) {
			slog.Error("Work item failed", "index", index, "error", err)
		}
	}

	var sem chan struct{}
	if opts.Workers > 0 {
		sem = make(chan struct{}, opts.Workers)
	}

	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()

			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			if ctx.Err() != nil {
				return
			}

			err := fn(ctx, i)
			if err != nil && ctx.Err() == nil {
				// Error occurred but context is still valid
				onError(i, err)
			}
		}()
	}

	wg.Wait()
}
