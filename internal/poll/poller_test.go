package poll_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fieldos/fieldos-client-go/internal/infra/observability"
	"github.com/fieldos/fieldos-client-go/internal/poll"

	"go.uber.org/zap"
)

func TestPoller_TicksAtInterval(t *testing.T) {
	var fetches int32
	p := poll.New("jobs", 20*time.Millisecond, func(context.Context) error {
		atomic.AddInt32(&fetches, 1)
		return nil
	}, observability.NewMetrics(), zap.NewNop())

	p.Start(context.Background())
	time.Sleep(110 * time.Millisecond)
	p.Stop()

	if got := atomic.LoadInt32(&fetches); got < 3 {
		t.Errorf("expected at least 3 fetches, got %d", got)
	}
}

func TestPoller_SlowFetchSuppressesOverlap(t *testing.T) {
	var running, overlapped int32
	metrics := observability.NewMetrics()

	p := poll.New("jobs", 10*time.Millisecond, func(context.Context) error {
		if atomic.AddInt32(&running, 1) > 1 {
			atomic.AddInt32(&overlapped, 1)
		}
		time.Sleep(50 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return nil
	}, metrics, zap.NewNop())

	p.Start(context.Background())
	time.Sleep(120 * time.Millisecond)
	p.Stop()

	if got := atomic.LoadInt32(&overlapped); got != 0 {
		t.Errorf("fetches overlapped %d times; ticks must be suppressed instead", got)
	}
	if snap := metrics.Snapshot(); snap.PollSuppressed == 0 {
		t.Error("expected suppressed ticks to be counted")
	}
}

func TestPoller_StopTerminatesLoop(t *testing.T) {
	var fetches int32
	p := poll.New("jobs", 10*time.Millisecond, func(context.Context) error {
		atomic.AddInt32(&fetches, 1)
		return nil
	}, observability.NewMetrics(), zap.NewNop())

	p.Start(context.Background())
	time.Sleep(35 * time.Millisecond)
	p.Stop()

	after := atomic.LoadInt32(&fetches)
	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&fetches); got != after {
		t.Errorf("poller still fetching after Stop: %d -> %d", after, got)
	}

	p.Stop() // second Stop is a no-op
}

func TestPoller_StartTwiceRunsOneLoop(t *testing.T) {
	var fetches int32
	p := poll.New("jobs", 10*time.Millisecond, func(context.Context) error {
		atomic.AddInt32(&fetches, 1)
		return nil
	}, observability.NewMetrics(), zap.NewNop())

	p.Start(context.Background())
	p.Start(context.Background()) // no-op, must not orphan a second loop
	time.Sleep(35 * time.Millisecond)
	p.Stop()

	after := atomic.LoadInt32(&fetches)
	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&fetches); got != after {
		t.Errorf("a loop survived Stop after double Start: %d -> %d", after, got)
	}
}

func TestPoller_StopWaitsForInFlightFetch(t *testing.T) {
	started := make(chan struct{})
	var completed int32
	p := poll.New("jobs", 10*time.Millisecond, func(context.Context) error {
		close(started)
		time.Sleep(40 * time.Millisecond)
		atomic.AddInt32(&completed, 1)
		return nil
	}, observability.NewMetrics(), zap.NewNop())

	p.Start(context.Background())
	<-started
	p.Stop()

	if got := atomic.LoadInt32(&completed); got != 1 {
		t.Errorf("Stop returned before the in-flight fetch finished (completed=%d)", got)
	}
}

func TestPoller_RefreshSharesInFlightFetch(t *testing.T) {
	var fetches int32
	p := poll.New("jobs", time.Hour, func(context.Context) error {
		atomic.AddInt32(&fetches, 1)
		time.Sleep(40 * time.Millisecond)
		return nil
	}, observability.NewMetrics(), zap.NewNop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = p.Refresh(context.Background())
	}()
	time.Sleep(10 * time.Millisecond)
	_ = p.Refresh(context.Background()) // joins the in-flight fetch
	<-done

	if got := atomic.LoadInt32(&fetches); got != 1 {
		t.Errorf("expected concurrent refreshes to coalesce into 1 fetch, got %d", got)
	}
}
