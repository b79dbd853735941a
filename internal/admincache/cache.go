// Package admincache memoizes the per-user admin flag so authorization
// checks on admin routes do not hit the database on every request. Entries
// live for a short TTL; a revoked flag can therefore linger until the entry
// expires, which is an accepted trade for back-office traffic.
package admincache

import (
	"context"
	"sync"
	"time"
)

const defaultTTL = 60 * time.Second

// Lookup resolves the authoritative admin flag for a user.
type Lookup func(ctx context.Context, userID int64) (bool, error)

type entry struct {
	isAdmin   bool
	expiresAt time.Time
}

// Cache is a read-through cache over a Lookup. Safe for concurrent use.
type Cache struct {
	mu     sync.RWMutex
	items  map[int64]entry
	lookup Lookup
	ttl    time.Duration
	now    func() time.Time
}

func New(lookup Lookup) *Cache {
	return &Cache{
		items:  make(map[int64]entry),
		lookup: lookup,
		ttl:    defaultTTL,
		now:    time.Now,
	}
}

// IsAdmin returns the cached flag, refreshing from the lookup when the
// entry is missing or expired. Lookup errors are not cached.
func (c *Cache) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	c.mu.RLock()
	e, ok := c.items[userID]
	c.mu.RUnlock()
	if ok && c.now().Before(e.expiresAt) {
		return e.isAdmin, nil
	}

	isAdmin, err := c.lookup(ctx, userID)
	if err != nil {
		return false, err
	}
	c.mu.Lock()
	c.items[userID] = entry{isAdmin: isAdmin, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return isAdmin, nil
}

// Invalidate drops a user's entry so the next check refreshes immediately.
// Called when the flag is changed through the back office.
func (c *Cache) Invalidate(userID int64) {
	c.mu.Lock()
	delete(c.items, userID)
	c.mu.Unlock()
}
