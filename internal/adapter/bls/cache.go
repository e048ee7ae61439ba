package bls

import (
	"sync"
	"time"

	"github.com/RakeemRanger/bls-mcp/internal/domain"
)

// seriesCache is a thread-safe snapshot cache of series records. Entries are
// replaced wholesale per series; a single timestamp marks the last bulk
// refresh and gates staleness for the whole snapshot. On-demand fetches store
// entries without touching the timestamp.
type seriesCache struct {
	mu          sync.Mutex
	entries     map[string][]domain.SeriesRecord
	lastFetched time.Time
	ttl         time.Duration
}

func newSeriesCache(ttl time.Duration) *seriesCache {
	return &seriesCache{
		entries: make(map[string][]domain.SeriesRecord),
		ttl:     ttl,
	}
}

// valid reports whether the snapshot is fresh: a bulk refresh has completed,
// something is cached, and the TTL has not elapsed. An empty cache is stale
// no matter how recent the stamp.
func (c *seriesCache) valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validLocked()
}

func (c *seriesCache) validLocked() bool {
	if c.lastFetched.IsZero() || len(c.entries) == 0 {
		return false
	}
	return clock.Now().Sub(c.lastFetched) < c.ttl
}

// get returns the records cached for a series ID regardless of freshness.
func (c *seriesCache) get(id string) ([]domain.SeriesRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	records, ok := c.entries[id]
	return records, ok
}

// getValid returns cached records only while the snapshot is fresh.
func (c *seriesCache) getValid(id string) ([]domain.SeriesRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.validLocked() {
		return nil, false
	}
	records, ok := c.entries[id]
	return records, ok
}

// put replaces a series' records wholesale. Records are never merged.
func (c *seriesCache) put(id string, records []domain.SeriesRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = records
}

// markRefreshed stamps the bulk refresh time.
func (c *seriesCache) markRefreshed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastFetched = clock.Now()
}

func (c *seriesCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// snapshot returns a copy of the cache map. Record slices are shared; records
// are immutable after decode.
func (c *seriesCache) snapshot() map[string][]domain.SeriesRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string][]domain.SeriesRecord, len(c.entries))
	for id, records := range c.entries {
		out[id] = records
	}
	return out
}
