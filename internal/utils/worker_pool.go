package utils

import (
	"context"
	"sync"
)

type CompletedTask[T any] struct {
	Index  int
	Result T
	Error  error
}

// RunInPool applies worker to every input on at most maxWorkers goroutines.
// Completed tasks are sent to the returned channel in completion order and
// carry the index of their input. The channel is closed once all workers exit.
// Inputs not yet started when ctx is done complete with ctx.Err().
func RunInPool[In any, Out any](ctx context.Context, worker func(context.Context, In) (Out, error), inputs []In, maxWorkers int) <-chan CompletedTask[Out] {
	completed := make(chan CompletedTask[Out], len(inputs))

	queue := make(chan int, len(inputs))
	for i := range inputs {
		queue <- i
	}
	close(queue)

	workers := min(len(inputs), max(maxWorkers, 1))

	go func() {
		wg := sync.WaitGroup{}
		wg.Add(workers)

		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()

				for idx := range queue {
					if err := ctx.Err(); err != nil {
						completed <- CompletedTask[Out]{Index: idx, Error: err}
						continue
					}

					res, err := worker(ctx, inputs[idx])
					completed <- CompletedTask[Out]{Index: idx, Result: res, Error: err}
				}
			}()
		}

		wg.Wait()

		close(completed)
	}()

	return completed
}

// CollectOrdered drains a pool's output into a slice ordered like the inputs.
// onDone is called after every completed task when not nil. The first error
// encountered is returned after the channel is drained.
func CollectOrdered[Out any](completed <-chan CompletedTask[Out], n int, onDone func()) ([]Out, error) {
	results := make([]Out, n)
	var firstErr error

	for task := range completed {
		if task.Error != nil {
			if firstErr == nil {
				firstErr = task.Error
			}
		} else {
			results[task.Index] = task.Result
		}
		if onDone != nil {
			onDone()
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
