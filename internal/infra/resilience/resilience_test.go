package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fieldos/fieldos-client-go/internal/infra/resilience"
)

func TestRetryWithBackoff_Success(t *testing.T) {
	cfg := resilience.Config{
		MaxRetries:     3,
		InitialBackoff: 10 * time.Millisecond,
	}

	callCount := 0
	err := resilience.RetryWithBackoff(context.Background(), cfg, func() error {
		callCount++
		return nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
}

func TestRetryWithBackoff_RetriesOnFailure(t *testing.T) {
	cfg := resilience.Config{
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
	}

	callCount := 0
	err := resilience.RetryWithBackoff(context.Background(), cfg, func() error {
		callCount++
		if callCount < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected eventual success, got %v", err)
	}
	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
}

func TestRetryWithBackoff_PermanentStopsImmediately(t *testing.T) {
	cfg := resilience.Config{
		MaxRetries:     5,
		InitialBackoff: time.Millisecond,
	}

	inner := errors.New("credentials rejected")
	callCount := 0
	err := resilience.RetryWithBackoff(context.Background(), cfg, func() error {
		callCount++
		return &resilience.Permanent{Err: inner}
	})

	if !errors.Is(err, inner) {
		t.Fatalf("expected inner error, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("permanent error must not be retried, got %d calls", callCount)
	}
}

func TestRetryWithBackoff_RespectsContextCancellation(t *testing.T) {
	cfg := resilience.Config{
		MaxRetries:     10,
		InitialBackoff: 50 * time.Millisecond,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := resilience.RetryWithBackoff(ctx, cfg, func() error {
		return errors.New("always fails")
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBulkhead_LimitsConcurrency(t *testing.T) {
	b := resilience.NewBulkhead(1)

	if err := b.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := b.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded while slot held, got %v", err)
	}

	b.Release()
	if err := b.Acquire(context.Background()); err != nil {
		t.Fatalf("expected acquire after release, got %v", err)
	}
}
