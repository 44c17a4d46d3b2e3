package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(3, time.Minute, 1)

	for i := 0; i < 3; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		b.RecordFailure()
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if b.State() != CircuitStateOpen {
		t.Fatalf("expected open state, got %s", b.State())
	}
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(1, 10*time.Millisecond, 1)
	base := time.Now()
	b.now = func() time.Time { return base }

	if err := b.Allow(); err != nil {
		t.Fatalf("allow: %v", err)
	}
	b.RecordFailure()
	if b.State() != CircuitStateOpen {
		t.Fatalf("expected open state, got %s", b.State())
	}

	b.now = func() time.Time { return base.Add(20 * time.Millisecond) }
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	b.RecordSuccess()

	if b.State() != CircuitStateClosed {
		t.Fatalf("expected closed state after probe success, got %s", b.State())
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(1, 10*time.Millisecond, 1)
	base := time.Now()
	b.now = func() time.Time { return base }

	_ = b.Allow()
	b.RecordFailure()

	b.now = func() time.Time { return base.Add(20 * time.Millisecond) }
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	b.RecordFailure()

	if b.State() != CircuitStateOpen {
		t.Fatalf("expected reopened state, got %s", b.State())
	}
}
