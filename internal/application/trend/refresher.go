package trend

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Refresher periodically recomputes the default location's report so the
// cache stays warm between visitor requests.
type Refresher struct {
	service  *Service
	interval time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// DefaultRefreshInterval is used when the configured interval is not positive.
const DefaultRefreshInterval = 15 * time.Minute

// NewRefresher creates a refresher driving the given service. A zero or
// negative interval falls back to DefaultRefreshInterval; time.NewTicker
// panics on such values.
func NewRefresher(service *Service, interval time.Duration, log *zap.Logger) *Refresher {
	if log == nil {
		log = zap.NewNop()
	}
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{
		service:  service,
		interval: interval,
		logger:   log,
	}
}

// Start launches the background loop. Calling Start on a running
// refresher is a no-op. The first refresh runs immediately.
func (r *Refresher) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	r.stopOnce = sync.Once{}

	go r.run(ctx)

	r.logger.Info("report refresher started",
		zap.Duration("interval", r.interval),
	)
}

// Stop terminates the loop and waits for the in-flight refresh to finish.
// Safe to call multiple times and before Start.
func (r *Refresher) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	done := r.done
	r.mu.Unlock()

	if cancel == nil {
		return
	}

	r.stopOnce.Do(func() {
		cancel()
		<-done
		r.mu.Lock()
		r.cancel = nil
		r.mu.Unlock()
		r.logger.Info("report refresher stopped")
	})
}

func (r *Refresher) run(ctx context.Context) {
	defer close(r.done)

	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// refresh recomputes the default report, bypassing the cache so the
// stored entry is replaced rather than reused.
func (r *Refresher) refresh(ctx context.Context) {
	if _, err := r.service.GetTrend(ctx, Query{Refresh: true}); err != nil {
		if ctx.Err() != nil {
			return
		}
		r.logger.Warn("scheduled report refresh failed", zap.Error(err))
	}
}
