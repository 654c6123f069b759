package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	appagro "github.com/agro/backend/internal/application/agro"
)

// reportEntry with a zero expiresAt never expires
type reportEntry struct {
	value     string
	expiresAt time.Time
}

// InMemoryReportCache implements ReportCache with a process-local map.
// Suitable for a single instance; expired entries are dropped lazily on read.
type InMemoryReportCache struct {
	mu      sync.RWMutex
	entries map[string]reportEntry
	now     func() time.Time
}

// NewInMemoryReportCache creates an empty cache
func NewInMemoryReportCache() *InMemoryReportCache {
	return &InMemoryReportCache{
		entries: make(map[string]reportEntry),
		now:     time.Now,
	}
}

// Get returns the cached value, ok=false on a miss or after expiry
func (c *InMemoryReportCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		if cur, still := c.entries[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

// Set stores a value for ttl. A non-positive ttl stores nothing.
func (c *InMemoryReportCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = reportEntry{value: value, expiresAt: c.now().Add(ttl)}
	return nil
}

// Incr increments the integer stored at key. The key never expires; a
// non-integer value counts as 0.
func (c *InMemoryReportCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.entries[key].value, 10, 64)
	n++
	c.entries[key] = reportEntry{value: strconv.FormatInt(n, 10)}
	return n, nil
}

// Len returns the number of stored entries, expired ones included
func (c *InMemoryReportCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ appagro.ReportCache = (*InMemoryReportCache)(nil)
