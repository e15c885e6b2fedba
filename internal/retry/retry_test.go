package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func instantPolicy(maxAttempts int, retryable func(error) bool) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		BaseDelay:   time.Millisecond,
		Multiplier:  2.0,
		Retryable:   retryable,
		Sleep:       func(ctx context.Context, d time.Duration) error { return nil },
	}
}

func TestPolicy_SucceedsFirstTry(t *testing.T) {
	calls := 0
	policy := instantPolicy(3, func(error) bool { return true })

	err := policy.Do(context.Background(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d", calls)
	}
}

func TestPolicy_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	policy := instantPolicy(3, func(error) bool { return true })

	err := policy.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d", calls)
	}
}

func TestPolicy_ExhaustsAttempts(t *testing.T) {
	calls := 0
	wantErr := errors.New("still failing")
	policy := instantPolicy(3, func(error) bool { return true })

	err := policy.Do(context.Background(), func() error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d", calls)
	}
}

func TestPolicy_NonRetryableStopsImmediately(t *testing.T) {
	calls := 0
	fatal := errors.New("bad request")
	policy := instantPolicy(5, func(err error) bool { return !errors.Is(err, fatal) })

	err := policy.Do(context.Background(), func() error {
		calls++
		return fatal
	})
	if !errors.Is(err, fatal) {
		t.Fatalf("err = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d", calls)
	}
}

func TestPolicy_NilPredicateNeverRetries(t *testing.T) {
	calls := 0
	policy := instantPolicy(5, nil)

	_ = policy.Do(context.Background(), func() error {
		calls++
		return errors.New("any")
	})
	if calls != 1 {
		t.Errorf("calls = %d", calls)
	}
}

func TestPolicy_BackoffDoubles(t *testing.T) {
	var delays []time.Duration
	policy := Policy{
		MaxAttempts: 4,
		BaseDelay:   100 * time.Millisecond,
		Multiplier:  2.0,
		Retryable:   func(error) bool { return true },
		Sleep: func(ctx context.Context, d time.Duration) error {
			delays = append(delays, d)
			return nil
		},
	}

	_ = policy.Do(context.Background(), func() error { return errors.New("x") })

	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond}
	if len(delays) != len(want) {
		t.Fatalf("delays = %v", delays)
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Errorf("delay %d = %v, want %v", i, delays[i], want[i])
		}
	}
}

func TestPolicy_CancelledSleepAborts(t *testing.T) {
	calls := 0
	policy := Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		Multiplier:  2.0,
		Retryable:   func(error) bool { return true },
		Sleep:       func(ctx context.Context, d time.Duration) error { return context.Canceled },
	}

	err := policy.Do(context.Background(), func() error {
		calls++
		return errors.New("transient")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d", calls)
	}
}

func TestTransientNetworkError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{"nil", nil, false},
		{"timeout", errors.New("dial tcp: i/o timeout"), true},
		{"deadline", context.DeadlineExceeded, true},
		{"refused", errors.New("connect: connection refused"), true},
		{"reset", errors.New("read: connection reset by peer"), true},
		{"dns", errors.New("no such host"), false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransientNetworkError(tt.err); got != tt.transient {
				t.Errorf("TransientNetworkError(%v) = %v, want %v", tt.err, got, tt.transient)
			}
		})
	}
}
