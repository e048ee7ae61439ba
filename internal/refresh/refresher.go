// Package refresh keeps the series snapshot warm for serving surfaces.
package refresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can drive the tick loop.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Fetcher is the slice of the BLS client the refresher drives.
type Fetcher interface {
	FetchAll(ctx context.Context, startYear, endYear int) error
}

// Refresher re-runs bulk fetches on a fixed interval so serving surfaces
// never pay the refresh cost inline. The interval normally equals the cache
// TTL; the fetch itself is a no-op while the snapshot is still fresh.
type Refresher struct {
	fetcher  Fetcher
	interval time.Duration
	logger   *slog.Logger
}

// New creates a Refresher that fetches every interval.
func New(fetcher Fetcher, interval time.Duration, logger *slog.Logger) *Refresher {
	return &Refresher{fetcher: fetcher, interval: interval, logger: logger}
}

// Run performs an immediate warm fetch, then ticks until the context is
// canceled. Fetch failures are logged and the loop keeps going; the next
// tick retries.
func (r *Refresher) Run(ctx context.Context) error {
	r.logger.Info("refresher started", "interval", r.interval)

	if !r.fetch(ctx) {
		return nil
	}

	ticker := clock.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("refresher stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			if !r.fetch(ctx) {
				return nil
			}
		}
	}
}

// fetch runs one bulk refresh. Returns false when the context is done.
func (r *Refresher) fetch(ctx context.Context) bool {
	if err := r.fetcher.FetchAll(ctx, 0, 0); err != nil {
		if ctx.Err() != nil {
			r.logger.Info("refresher stopping", "reason", ctx.Err())
			return false
		}
		r.logger.Error("bulk refresh failed", "error", err)
	}
	return true
}
