package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

var (
	errTransient = errors.New("transient failure")
	errPermanent = errors.New("permanent failure")
)

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	p := Policy{MaxAttempts: 3, Retryable: func(error) bool { return true }}

	err := Do(context.Background(), p, func(ctx context.Context) error {
		calls++
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("fn was called %d times, expected 1", calls)
	}
}

func TestDo_RetriesTransientUntilSuccess(t *testing.T) {
	calls := 0
	p := Policy{
		MaxAttempts: 3,
		Backoff:     []time.Duration{time.Millisecond},
		Retryable:   func(err error) bool { return errors.Is(err, errTransient) },
	}

	err := Do(context.Background(), p, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("fn was called %d times, expected 3", calls)
	}
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	p := Policy{
		MaxAttempts: 3,
		Backoff:     []time.Duration{time.Millisecond},
		Retryable:   func(err error) bool { return errors.Is(err, errTransient) },
	}

	err := Do(context.Background(), p, func(ctx context.Context) error {
		calls++
		return errTransient
	})

	if !errors.Is(err, errTransient) {
		t.Fatalf("expected %v, got %v", errTransient, err)
	}
	if calls != 3 {
		t.Errorf("fn was called %d times, expected 3", calls)
	}
}

func TestDo_PermanentErrorDoesNotRetry(t *testing.T) {
	calls := 0
	p := Policy{
		MaxAttempts: 5,
		Retryable:   func(err error) bool { return errors.Is(err, errTransient) },
	}

	err := Do(context.Background(), p, func(ctx context.Context) error {
		calls++
		return errPermanent
	})

	if !errors.Is(err, errPermanent) {
		t.Fatalf("expected %v, got %v", errPermanent, err)
	}
	if calls != 1 {
		t.Errorf("fn was called %d times, expected 1", calls)
	}
}

func TestDo_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	p := Policy{MaxAttempts: 3}

	err := Do(ctx, p, func(ctx context.Context) error {
		calls++
		return errTransient
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("fn was called %d times, expected 0", calls)
	}
}

func TestDo_CancelDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	p := Policy{
		MaxAttempts: 2,
		Backoff:     []time.Duration{time.Minute},
	}

	done := make(chan error, 1)
	go func() {
		done <- Do(ctx, p, func(ctx context.Context) error { return errTransient })
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Do did not return after cancellation")
	}
}

func TestPolicy_BackoffSchedule(t *testing.T) {
	p := Policy{Backoff: []time.Duration{time.Second, 2 * time.Second}}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{2, 2 * time.Second}, // 最後の値を繰り返す
		{9, 2 * time.Second},
	}
	for _, tt := range tests {
		if got := p.delay(tt.attempt); got != tt.want {
			t.Errorf("delay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}

	var empty Policy
	if got := empty.delay(0); got != 0 {
		t.Errorf("empty policy delay = %v, want 0", got)
	}
}
