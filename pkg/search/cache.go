package search

import (
	"context"
	"strings"
	"sync"
	"time"
)

type cacheEntry struct {
	results   []Result
	expiresAt time.Time
}

// CachedClient memoizes successful lookups so repeated review passes over the
// same itinerary don't re-query the search provider. Failures are not cached.
type CachedClient struct {
	inner Client
	ttl   time.Duration

	mu   sync.RWMutex
	data map[string]cacheEntry
}

func NewCachedClient(inner Client, ttl time.Duration) *CachedClient {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &CachedClient{
		inner: inner,
		ttl:   ttl,
		data:  make(map[string]cacheEntry),
	}
}

func (c *CachedClient) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	key := strings.ToLower(strings.TrimSpace(query))

	c.mu.RLock()
	entry, ok := c.data[key]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.results, nil
	}

	results, err := c.inner.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.data[key] = cacheEntry{results: results, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	return results, nil
}
