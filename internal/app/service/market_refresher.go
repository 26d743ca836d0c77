package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"portfolio_dashboard/internal/app/port"
)

// MarketRefresher periodically reloads every live dashboard snapshot so that
// market data stays fresh while users keep the page open.
type MarketRefresher struct {
	portfolio port.PortfolioService
	logger    port.Logger
	interval  time.Duration

	running atomic.Bool
	wg      sync.WaitGroup
}

// NewMarketRefresher creates a refresher. Non-positive intervals default to 60s.
func NewMarketRefresher(portfolio port.PortfolioService, logger port.Logger, interval time.Duration) *MarketRefresher {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &MarketRefresher{portfolio: portfolio, logger: logger, interval: interval}
}

// Run blocks until ctx is cancelled, then waits for an in-flight refresh to
// return. A tick that fires while the previous refresh is still running is
// skipped.
func (r *MarketRefresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer r.wg.Wait()

	r.logger.Info("Market refresher started", "interval", r.interval.String())
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Market refresher stopping")
			return
		case <-ticker.C:
			if !r.running.CompareAndSwap(false, true) {
				r.logger.Warn("Previous market refresh still running, skipping tick")
				continue
			}
			r.wg.Add(1)
			go func() {
				defer r.wg.Done()
				defer r.running.Store(false)
				r.refresh(ctx)
			}()
		}
	}
}

func (r *MarketRefresher) refresh(ctx context.Context) {
	started := time.Now()
	if err := r.portfolio.RefreshAll(ctx); err != nil {
		r.logger.Warn("Market refresh finished with errors", "error", err, "duration", time.Since(started).String())
		return
	}
	r.logger.Debug("Market refresh completed", "duration", time.Since(started).String())
}
