// Package retry provides the shared retry policy used by the HTTP prober
// and the LLM client wrapper.
package retry

import (
	"context"
	"strings"
	"time"
)

// Policy describes a bounded exponential-backoff retry schedule with a
// caller-supplied retryable-error predicate.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64

	// Retryable reports whether an error is worth another attempt.
	// A nil predicate retries nothing.
	Retryable func(error) bool

	// Sleep is injectable for tests; defaults to a context-aware wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultPolicy returns the policy shared by network-facing components:
// three attempts, 1s base delay, doubling.
func DefaultPolicy(retryable func(error) bool) Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   1 * time.Second,
		Multiplier:  2.0,
		Retryable:   retryable,
	}
}

// Do runs fn until it succeeds, runs out of attempts, or hits a
// non-retryable error. The last error is returned.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	sleep := p.Sleep
	if sleep == nil {
		sleep = contextSleep
	}

	delay := p.BaseDelay
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if p.Retryable == nil || !p.Retryable(err) {
			return err
		}
		if attempt == attempts-1 {
			break
		}
		if sleepErr := sleep(ctx, delay); sleepErr != nil {
			return err
		}
		delay = time.Duration(float64(delay) * p.Multiplier)
	}
	return err
}

func contextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// TransientNetworkError checks error text for transient network failures.
// Go's net errors do not share a common type across timeout, refusal, and
// reset, so string matching is the practical predicate here.
func TransientNetworkError(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "deadline exceeded") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}
