package service

import (
	"context"
	"sync"
	"time"

	"github.com/abhayypatel/HeartDiseaseRiskPrediction/internal/domain/model"
	"github.com/abhayypatel/HeartDiseaseRiskPrediction/pkg/logger"
	"github.com/abhayypatel/HeartDiseaseRiskPrediction/pkg/metrics"
)

// Historian abstracts the remote history fetch.
type Historian interface {
	History(ctx context.Context, userID string) ([]model.HistoryEntry, error)
}

// Cache holds the most recently fetched prediction history for one
// identity. Every successful refresh replaces the sequence wholesale; the
// cache never merges or appends locally. A failed refresh keeps the stale
// sequence available, which is deliberate: history is advisory, not
// critical path.
type Cache struct {
	mu sync.RWMutex

	historian Historian
	entries   []model.HistoryEntry

	seq         uint64
	applied     uint64
	lastRefresh time.Time

	log logger.Logger
}

// NewCache creates an empty history cache over the given fetcher.
func NewCache(historian Historian, opts ...CacheOption) *Cache {
	c := &Cache{historian: historian}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Refresh replaces the cached entries with the server's current answer.
// Refreshes are sequence-tagged: a slow response that arrives after a newer
// one has been applied is discarded. Errors are logged here and returned
// only so callers in tests can observe them; no user-facing surface exists
// for history failures.
func (c *Cache) Refresh(ctx context.Context, userID string) error {
	c.mu.Lock()
	c.seq++
	tag := c.seq
	c.mu.Unlock()

	metrics.RecordHistoryRefresh()

	entries, err := c.historian.History(ctx, userID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		metrics.RecordHistoryRefreshFailure()
		if c.log != nil {
			c.log.Warn(ctx, "history refresh failed; keeping stale entries", logger.Error(err))
		}
		return err
	}

	if tag <= c.applied {
		metrics.RecordStaleResponseDropped()
		if c.log != nil {
			c.log.Debug(ctx, "discarded stale history refresh")
		}
		return nil
	}
	c.applied = tag
	c.entries = entries
	c.lastRefresh = time.Now()
	metrics.UpdateHistoryEntries(len(entries))
	return nil
}

// Entries returns a copy of the cached sequence in server order.
func (c *Cache) Entries() []model.HistoryEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.HistoryEntry(nil), c.entries...)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// LastRefresh returns when the cache last applied a successful refresh.
func (c *Cache) LastRefresh() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRefresh
}
