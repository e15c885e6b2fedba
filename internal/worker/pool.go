package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one executed job.
type Result interface {
	GetError() error
}

// Pool fans jobs out across a fixed number of worker goroutines. A
// collector drains results as they arrive, so callers may submit any
// number of jobs before calling Wait. Jobs submitted after Wait or
// Shutdown are dropped.
type Pool struct {
	workers   int
	jobs      chan Job
	results   chan Result
	collected []Result
	done      chan struct{}
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a pool that runs at most workers jobs at once.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		results: make(chan Result, workers*2),
		done:    make(chan struct{}),
	}
}

// Start launches the workers and the result collector. Cancelling ctx
// stops the pool early; in-flight jobs see the cancellation through
// their own ctx argument.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	go p.collect()
}

func (p *Pool) run() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

func (p *Pool) collect() {
	for result := range p.results {
		p.collected = append(p.collected, result)
	}
	close(p.done)
}

// Submit queues a job. It returns immediately if the pool has been
// stopped.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobs <- job:
	}
}

// Wait closes the queue, waits for the workers to drain it, and
// returns every collected result.
func (p *Pool) Wait() []Result {
	close(p.jobs)
	p.wg.Wait()
	p.closeResults()
	<-p.done
	return p.collected
}

// Shutdown stops the pool without draining queued jobs.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
	<-p.done
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
