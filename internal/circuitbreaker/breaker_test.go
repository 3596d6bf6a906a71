package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errUpstream = errors.New("upstream failure")

func failingCall() error { return errUpstream }

func succeedingCall() error { return nil }

func TestBreakerOpensAfterThreshold(t *testing.T) {
	t.Parallel()

	b := New(Config{FailureThreshold: 3, SuccessThreshold: 1, Timeout: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := b.Execute(ctx, failingCall); !errors.Is(err, errUpstream) {
			t.Fatalf("call %d: expected upstream error, got %v", i, err)
		}
	}

	if got := b.State(); got != StateOpen {
		t.Fatalf("expected open state, got %v", got)
	}

	err := b.Execute(ctx, succeedingCall)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen while open, got %v", err)
	}
}

func TestBreakerRecoversThroughHalfOpen(t *testing.T) {
	t.Parallel()

	b := New(Config{FailureThreshold: 1, SuccessThreshold: 2, Timeout: 10 * time.Millisecond})
	ctx := context.Background()

	if err := b.Execute(ctx, failingCall); !errors.Is(err, errUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if got := b.State(); got != StateOpen {
		t.Fatalf("expected open state, got %v", got)
	}

	time.Sleep(20 * time.Millisecond)

	// First probe transitions open -> half-open and succeeds
	if err := b.Execute(ctx, succeedingCall); err != nil {
		t.Fatalf("probe call failed: %v", err)
	}
	if got := b.State(); got != StateHalfOpen {
		t.Fatalf("expected half-open after one success, got %v", got)
	}

	if err := b.Execute(ctx, succeedingCall); err != nil {
		t.Fatalf("second probe call failed: %v", err)
	}
	if got := b.State(); got != StateClosed {
		t.Errorf("expected closed after success threshold, got %v", got)
	}
}

func TestBreakerReopensOnHalfOpenFailure(t *testing.T) {
	t.Parallel()

	b := New(Config{FailureThreshold: 1, SuccessThreshold: 2, Timeout: 10 * time.Millisecond})
	ctx := context.Background()

	_ = b.Execute(ctx, failingCall)
	time.Sleep(20 * time.Millisecond)

	if err := b.Execute(ctx, failingCall); !errors.Is(err, errUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if got := b.State(); got != StateOpen {
		t.Errorf("expected open after half-open failure, got %v", got)
	}
}

func TestBreakerStateChangeCallback(t *testing.T) {
	t.Parallel()

	var transitions []string
	b := New(Config{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
		OnStateChange: func(from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_ = b.Execute(context.Background(), failingCall)

	if len(transitions) != 1 || transitions[0] != "closed->open" {
		t.Errorf("unexpected transitions: %v", transitions)
	}
}

func TestBreakerReset(t *testing.T) {
	t.Parallel()

	b := New(Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Minute})
	_ = b.Execute(context.Background(), failingCall)

	b.Reset()
	if got := b.State(); got != StateClosed {
		t.Errorf("expected closed after reset, got %v", got)
	}

	stats := b.GetStats()
	if stats.FailureCount != 0 {
		t.Errorf("expected failure count reset, got %d", stats.FailureCount)
	}
}
