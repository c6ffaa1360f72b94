package parallel

import (
	"context"
	"sync"

	"github.com/nibzard/todotxt-go/internal/todo"
)

// LineResult is the outcome of decoding one line.
type LineResult struct {
	Line  todo.Line
	Task  *todo.Task
	Error error
}

// WorkerPool decodes lines with bounded concurrency.
//
// Each submitted line gets a result slot in submission order, so Wait
// returns results in the order lines were submitted without sorting.
type WorkerPool struct {
	sem      chan struct{} // nil when unbounded
	wg       sync.WaitGroup
	mu       sync.Mutex
	results  []LineResult
	failFast bool
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewWorkerPool creates a pool running at most maxWorkers lines at once.
// A maxWorkers of 0 or less means no bound. size is the number of lines the
// caller expects to submit. With failFast, the first failed line stops
// further scheduling.
func NewWorkerPool(ctx context.Context, maxWorkers, size int, failFast bool) *WorkerPool {
	ctx, cancel := context.WithCancel(ctx)
	p := &WorkerPool{
		results:  make([]LineResult, 0, max(size, 0)),
		failFast: failFast,
		ctx:      ctx,
		cancel:   cancel,
	}
	if maxWorkers > 0 {
		p.sem = make(chan struct{}, maxWorkers)
	}
	return p
}

// Submit schedules fn to decode line. It blocks until a worker slot is free
// and reports false, without running fn, when the pool was cancelled first.
func (p *WorkerPool) Submit(line todo.Line, fn func() (*todo.Task, error)) bool {
	if p.sem != nil {
		select {
		case p.sem <- struct{}{}:
		case <-p.ctx.Done():
			return false
		}
	}
	// Both select cases may be ready at once.
	if p.ctx.Err() != nil {
		p.release()
		return false
	}

	p.mu.Lock()
	slot := len(p.results)
	p.results = append(p.results, LineResult{Line: line})
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.release()

		task, err := fn()

		p.mu.Lock()
		defer p.mu.Unlock()
		p.results[slot].Task = task
		p.results[slot].Error = err
		if err != nil && p.failFast {
			p.cancel()
		}
	}()
	return true
}

func (p *WorkerPool) release() {
	if p.sem != nil {
		<-p.sem
	}
}

// Wait blocks until every scheduled line is decoded and returns their
// results in submission order. Lines Submit refused are not included.
func (p *WorkerPool) Wait() []LineResult {
	p.wg.Wait()
	p.cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	results := make([]LineResult, len(p.results))
	copy(results, p.results)
	return results
}
