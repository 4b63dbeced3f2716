package identity

import (
	"sync"
	"time"

	"github.com/ffmaxarena/arena-api/internal/domain/user"
	"github.com/jonboulle/clockwork"
)

type cacheEntry struct {
	principal user.Principal
	expiresAt time.Time
}

// principalCache remembers verified tokens for a short TTL so every admin
// request does not hit the identity provider.
type principalCache struct {
	mu         sync.RWMutex
	clock      clockwork.Clock
	entries    map[string]cacheEntry
	ttl        time.Duration
	maxEntries int
}

func newPrincipalCache(ttl time.Duration, maxEntries int, clock clockwork.Clock) *principalCache {
	return &principalCache{
		clock:      clock,
		entries:    make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

func (c *principalCache) Get(key string) (user.Principal, bool) {
	now := c.clock.Now()

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return user.Principal{}, false
	}
	if !entry.expiresAt.After(now) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return user.Principal{}, false
	}

	return entry.principal, true
}

// Set stores principal until min(ttl, tokenExpiry). A zero tokenExpiry means
// only the ttl applies.
func (c *principalCache) Set(key string, principal user.Principal, tokenExpiry time.Time) {
	if c.ttl <= 0 {
		return
	}

	now := c.clock.Now()
	expiresAt := now.Add(c.ttl)
	if !tokenExpiry.IsZero() && tokenExpiry.Before(expiresAt) {
		expiresAt = tokenExpiry
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictExpired(now)
		if len(c.entries) >= c.maxEntries {
			c.evictSoonest()
		}
	}

	c.entries[key] = cacheEntry{principal: principal, expiresAt: expiresAt}
}

func (c *principalCache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *principalCache) evictExpired(now time.Time) {
	for key, entry := range c.entries {
		if !entry.expiresAt.After(now) {
			delete(c.entries, key)
		}
	}
}

func (c *principalCache) evictSoonest() {
	var (
		victim string
		soon   time.Time
	)
	for key, entry := range c.entries {
		if victim == "" || entry.expiresAt.Before(soon) {
			victim, soon = key, entry.expiresAt
		}
	}
	delete(c.entries, victim)
}
