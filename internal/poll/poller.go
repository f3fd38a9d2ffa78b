// Package poll implements the fixed-interval list refresh used by screens
// that watch live data (dispatch board, job lists). A bare timer can stack
// a slow response on top of the next tick, so an in-flight fetch suppresses
// the tick, and manual refreshes coalesce with whatever fetch is already
// running.
package poll

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fieldos/fieldos-client-go/internal/infra/observability"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Poller drives fetch on a fixed interval until Stop is called.
type Poller struct {
	name     string
	interval time.Duration
	fetch    func(ctx context.Context) error

	sf       singleflight.Group
	inFlight atomic.Bool
	cancel   context.CancelFunc
	done     chan struct{}
	fetches  sync.WaitGroup

	metrics *observability.Metrics
	logger  *zap.Logger
}

// New creates a poller. fetch must be safe to call from multiple goroutines;
// the poller itself never runs it concurrently with a tick of its own.
func New(name string, interval time.Duration, fetch func(ctx context.Context) error, metrics *observability.Metrics, logger *zap.Logger) *Poller {
	if fetch == nil {
		panic("poll: fetch func is required")
	}
	return &Poller{
		name:     name,
		interval: interval,
		fetch:    fetch,
		metrics:  metrics,
		logger:   logger,
	}
}

// Start launches the loop. The first fetch happens after one interval, not
// immediately; callers that need data now call Refresh first. Calling Start
// on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.loop(ctx)
}

// Stop cancels the loop and waits for it, and for any fetch a tick already
// spawned, to finish. Idempotent.
func (p *Poller) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.fetches.Wait()
	p.cancel = nil
}

// Refresh runs a fetch now, sharing the result with any fetch already in
// flight instead of issuing a duplicate request.
func (p *Poller) Refresh(ctx context.Context) error {
	_, err, _ := p.sf.Do(p.name, func() (any, error) {
		return nil, p.fetch(ctx)
	})
	return err
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// tick issues a fetch unless the previous one is still running, in which
// case the tick is dropped and counted.
func (p *Poller) tick(ctx context.Context) {
	if !p.inFlight.CompareAndSwap(false, true) {
		p.metrics.IncrPollSuppressed(p.name)
		p.logger.Debug("poll: tick suppressed, previous fetch still running",
			zap.String("poller", p.name),
		)
		return
	}

	p.metrics.IncrPollTick(p.name)
	p.fetches.Add(1)
	go func() {
		defer p.fetches.Done()
		defer p.inFlight.Store(false)
		if err := p.Refresh(ctx); err != nil && ctx.Err() == nil {
			p.logger.Warn("poll: fetch failed",
				zap.String("poller", p.name),
				zap.Error(err),
			)
		}
	}()
}
