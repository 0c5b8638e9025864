package fimgen

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/arjunmahishi/fimgen/types"
)

// fileTask is one file queued for a worker. The split is drawn before
// dispatch so that it depends on file order only.
type fileTask struct {
	index int
	job   types.FileJob
	split types.Split
}

type fileResult[T any] struct {
	task  fileTask
	value T
	err   error
}

// runWorkers processes tasks on a pool of workers and hands every result to
// consume in task order. Each worker owns the state returned by newWorker.
// A per-file error goes to consume; an error returned by newWorker or
// consume stops the pool. Cancellation is observed between files.
func runWorkers[W, T any](
	ctx context.Context,
	tasks []fileTask,
	jobs int,
	newWorker func() (W, error),
	process func(ctx context.Context, w W, t fileTask) (T, error),
	consume func(t fileTask, v T, err error) error,
) error {
	if len(tasks) == 0 {
		return ctx.Err()
	}

	workerCount := jobs
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(tasks) {
		workerCount = len(tasks)
	}

	origCtx := ctx
	g, ctx := errgroup.WithContext(ctx)
	queue := make(chan fileTask, workerCount*2)
	results := make(chan fileResult[T], workerCount*2)

	g.Go(func() error {
		defer close(queue)
		for _, t := range tasks {
			select {
			case queue <- t:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for range workerCount {
		g.Go(func() error {
			defer wg.Done()
			w, err := newWorker()
			if err != nil {
				return err
			}
			for t := range queue {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				v, err := process(context.WithoutCancel(ctx), w, t)
				select {
				case results <- fileResult[T]{task: t, value: v, err: err}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	g.Go(func() error {
		pending := make(map[int]fileResult[T])
		next := 0
		for r := range results {
			pending[r.task.index] = r
			for {
				ready, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if err := consume(ready.task, ready.value, ready.err); err != nil {
					return err
				}
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	// If the caller's context was cancelled but all goroutines finished
	// before noticing, propagate the cancellation.
	return origCtx.Err()
}
