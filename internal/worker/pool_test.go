package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type stubResult struct {
	err error
}

func (r *stubResult) GetError() error {
	return r.err
}

// stubJob counts executions and optionally fails or sleeps.
type stubJob struct {
	fail  bool
	sleep time.Duration
	runs  *int32
}

func (j *stubJob) Execute(ctx context.Context) Result {
	if j.runs != nil {
		atomic.AddInt32(j.runs, 1)
	}
	if j.sleep > 0 {
		select {
		case <-time.After(j.sleep):
		case <-ctx.Done():
			return &stubResult{err: ctx.Err()}
		}
	}
	if j.fail {
		return &stubResult{err: errors.New("job failed")}
	}
	return &stubResult{}
}

func TestNewPool_ClampsWorkers(t *testing.T) {
	for _, tc := range []struct {
		in, want int
	}{
		{5, 5},
		{0, 1},
		{-3, 1},
	} {
		if got := NewPool(tc.in).workers; got != tc.want {
			t.Errorf("NewPool(%d): got %d workers, want %d", tc.in, got, tc.want)
		}
	}
}

func TestPool_RunsEveryJob(t *testing.T) {
	pool := NewPool(2)
	pool.Start(context.Background())

	var runs int32
	const count = 10
	for i := 0; i < count; i++ {
		pool.Submit(&stubJob{runs: &runs})
	}

	results := pool.Wait()
	if len(results) != count {
		t.Errorf("expected %d results, got %d", count, len(results))
	}
	if atomic.LoadInt32(&runs) != count {
		t.Errorf("expected %d executions, got %d", count, runs)
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	const workers = 4
	pool := NewPool(workers)
	pool.Start(context.Background())

	var current, peak int32
	for i := 0; i < 40; i++ {
		pool.Submit(&trackedJob{current: &current, peak: &peak})
	}
	pool.Wait()

	if p := atomic.LoadInt32(&peak); p > workers {
		t.Errorf("peak concurrency %d exceeded %d workers", p, workers)
	}
}

// trackedJob records the high-water mark of concurrent executions.
type trackedJob struct {
	current *int32
	peak    *int32
}

func (j *trackedJob) Execute(ctx context.Context) Result {
	now := atomic.AddInt32(j.current, 1)
	for {
		old := atomic.LoadInt32(j.peak)
		if now <= old || atomic.CompareAndSwapInt32(j.peak, old, now) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	atomic.AddInt32(j.current, -1)
	return &stubResult{}
}

func TestPool_CollectsErrors(t *testing.T) {
	pool := NewPool(2)
	pool.Start(context.Background())

	pool.Submit(&stubJob{fail: true})
	pool.Submit(&stubJob{})

	results := pool.Wait()
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	failed := 0
	for _, res := range results {
		if res.GetError() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failed result, got %d", failed)
	}
}

func TestPool_SubmitAfterShutdownReturns(t *testing.T) {
	pool := NewPool(2)
	pool.Start(context.Background())
	pool.Shutdown()

	done := make(chan struct{})
	go func() {
		pool.Submit(&stubJob{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit after shutdown blocked")
	}
}

func TestPool_CancelStopsWorkers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool(1)
	pool.Start(ctx)

	started := make(chan struct{})
	pool.Submit(&signalJob{started: started, sleep: 500 * time.Millisecond})
	<-started
	cancel()

	done := make(chan struct{})
	go func() {
		pool.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after cancellation")
	}
}

type signalJob struct {
	started chan struct{}
	sleep   time.Duration
}

func (j *signalJob) Execute(ctx context.Context) Result {
	close(j.started)
	select {
	case <-time.After(j.sleep):
	case <-ctx.Done():
	}
	return &stubResult{err: ctx.Err()}
}
