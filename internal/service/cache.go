package service

import (
	"sync"
	"time"

	"discount-dashboard/internal/models"
)

// snapshotCache holds the expanded discount snapshot for a short TTL so the
// dashboard's polling refreshes do not hammer the platform API. Safe for
// concurrent readers; the write path replaces the whole snapshot.
type snapshotCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	fetched time.Time
	items   []models.Discount
}

func newSnapshotCache(ttl time.Duration) *snapshotCache {
	return &snapshotCache{ttl: ttl}
}

func (c *snapshotCache) get(now time.Time) ([]models.Discount, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.items == nil || c.ttl <= 0 || now.Sub(c.fetched) > c.ttl {
		return nil, false
	}
	return c.items, true
}

func (c *snapshotCache) set(items []models.Discount, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	c.fetched = now
}
