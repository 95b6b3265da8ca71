package cache

import (
	"context"
	"sync"
	"time"

	"github.com/kejaplus/backend/internal/domain/report"
)

// reportEntry represents a cached report with expiration
type reportEntry struct {
	report    *report.FinancialReport
	expiresAt time.Time
}

// InMemoryReportCache implements the report cache using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryReportCache struct {
	mu        sync.RWMutex
	entries   map[string]reportEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryReportCache creates a new in-memory report cache.
// It starts a background goroutine to clean up expired entries.
func NewInMemoryReportCache() *InMemoryReportCache {
	c := &InMemoryReportCache{
		entries:  make(map[string]reportEntry),
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// Get returns the cached report for key, or nil when the key is absent
// or the entry has expired. A miss is not an error.
func (c *InMemoryReportCache) Get(ctx context.Context, key string) (*report.FinancialReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[key]
	if !exists {
		return nil, nil
	}

	if time.Now().After(e.expiresAt) {
		return nil, nil
	}

	return e.report, nil
}

// Set stores the report under key with the given TTL
func (c *InMemoryReportCache) Set(ctx context.Context, key string, r *report.FinancialReport, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = reportEntry{
		report:    r,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}

// Invalidate removes the cached report for key
func (c *InMemoryReportCache) Invalidate(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// Close stops the cleanup goroutine and releases resources.
// Safe to call multiple times.
func (c *InMemoryReportCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// Size returns the number of entries currently stored (including expired
// entries not yet swept)
func (c *InMemoryReportCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// cleanupLoop periodically removes expired entries
func (c *InMemoryReportCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopChan:
			return
		}
	}
}

// cleanup removes all expired entries
func (c *InMemoryReportCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
