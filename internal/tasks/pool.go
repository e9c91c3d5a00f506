package tasks

import (
	"context"
	"sync"
)

// fanOut runs fn over items on at most workers goroutines.
//
// Results are delivered in completion order on the returned channel, which is buffered for every
// item and closed once the last worker exits. Every item yields exactly one result; fn is expected
// to observe ctx itself.
func fanOut[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) R) <-chan R {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	jobs := make(chan T, len(items))
	results := make(chan R, len(items))

	for _, item := range items {
		jobs <- item
	}
	close(jobs)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go worker(ctx, &wg, jobs, results, fn)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// worker drains jobs until the channel is closed.
func worker[T, R any](ctx context.Context, wg *sync.WaitGroup, jobs <-chan T, results chan<- R, fn func(context.Context, T) R) {
	defer wg.Done()

	for job := range jobs {
		results <- fn(ctx, job)
	}
}
