package solvedac

import (
	"context"
	"sync"
	"time"
)

// CacheConfig holds per-endpoint TTLs. Profiles and tag stats move
// slowly; level stats refresh faster since they drive difficulty
// analysis.
type CacheConfig struct {
	UserTTL  time.Duration
	TagTTL   time.Duration
	LevelTTL time.Duration
}

// DefaultCacheConfig mirrors the hosted deployment's TTLs.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		UserTTL:  10 * time.Minute,
		TagTTL:   10 * time.Minute,
		LevelTTL: 5 * time.Minute,
	}
}

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// Cached decorates a Client with a TTL cache keyed by (endpoint, handle).
// Entries expire lazily on read; errors are never cached.
type Cached struct {
	inner Client
	cfg   CacheConfig

	mu      sync.RWMutex
	entries map[string]cacheEntry

	// now is swappable for tests.
	now func() time.Time
}

// WithCache wraps a Client with a TTL cache.
func WithCache(inner Client, cfg CacheConfig) *Cached {
	if cfg.UserTTL <= 0 {
		cfg.UserTTL = 10 * time.Minute
	}
	if cfg.TagTTL <= 0 {
		cfg.TagTTL = 10 * time.Minute
	}
	if cfg.LevelTTL <= 0 {
		cfg.LevelTTL = 5 * time.Minute
	}
	return &Cached{
		inner:   inner,
		cfg:     cfg,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *Cached) User(ctx context.Context, handle string) (*User, error) {
	key := "user:" + handle
	if v, ok := c.get(key); ok {
		return v.(*User), nil
	}
	u, err := c.inner.User(ctx, handle)
	if err != nil {
		return nil, err
	}
	c.put(key, u, c.cfg.UserTTL)
	return u, nil
}

func (c *Cached) TagStats(ctx context.Context, handle string) ([]TagStat, error) {
	key := "tags:" + handle
	if v, ok := c.get(key); ok {
		return v.([]TagStat), nil
	}
	stats, err := c.inner.TagStats(ctx, handle)
	if err != nil {
		return nil, err
	}
	c.put(key, stats, c.cfg.TagTTL)
	return stats, nil
}

func (c *Cached) LevelStats(ctx context.Context, handle string) ([]LevelStat, error) {
	key := "levels:" + handle
	if v, ok := c.get(key); ok {
		return v.([]LevelStat), nil
	}
	stats, err := c.inner.LevelStats(ctx, handle)
	if err != nil {
		return nil, err
	}
	c.put(key, stats, c.cfg.LevelTTL)
	return stats, nil
}

// Invalidate drops all cached entries for a handle.
func (c *Cached) Invalidate(handle string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, "user:"+handle)
	delete(c.entries, "tags:"+handle)
	delete(c.entries, "levels:"+handle)
}

// Len reports the number of live entries, for diagnostics.
func (c *Cached) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, e := range c.entries {
		if c.now().Before(e.expiresAt) {
			n++
		}
	}
	return n
}

func (c *Cached) get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (c *Cached) put(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}
