// File: internal/infra/worker/pool.go
package worker

import (
	"context"
	"runtime"
	"sync"
)

// Task is one unit of work executed by the pool.
type Task func(ctx context.Context) error

// Pool fans a batch of tasks out over a bounded number of goroutines. Used
// for reminder delivery, where each send is an independent network call and
// one slow recipient must not serialize the batch.
type Pool struct {
	n int
}

func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{n: workers}
}

// Run executes all tasks with at most p.n in flight and returns one error
// slot per task, index-aligned. It always waits for every task: a failed send
// must not cancel its siblings.
func (p *Pool) Run(ctx context.Context, tasks []Task) []error {
	errs := make([]error, len(tasks))
	sem := make(chan struct{}, p.n)
	var wg sync.WaitGroup

	for i, task := range tasks {
		if task == nil {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, task Task) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			errs[i] = task(ctx)
		}(i, task)
	}
	wg.Wait()
	return errs
}
