// Package cache implements the cache-aside layer in front of the user
// repository. Entries are immutable point-in-time snapshots keyed by
// normalized email and expire after a bounded TTL; every password-mutating
// path goes through the decorator so eviction cannot be forgotten by callers.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/blogauth/internal/server/models"
	"github.com/dmitrijs2005/blogauth/internal/server/repositories/users"
)

// DefaultTTL bounds how long a user snapshot may be served from memory.
const DefaultTTL = 5 * time.Minute

type entry struct {
	user      models.User
	expiresAt time.Time
}

// UserCache is a concurrency-safe TTL map from normalized email to a user
// snapshot. Concurrent misses for the same key may both populate; last write
// wins, which is fine because entries are snapshots of a point in time.
type UserCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]entry
}

// NewUserCache creates an empty cache. A non-positive ttl falls back to
// DefaultTTL.
func NewUserCache(ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &UserCache{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Get returns a copy of the cached snapshot for email, or false on a miss.
// Expired entries are treated as misses and dropped lazily.
func (c *UserCache) Get(email string) (*models.User, bool) {
	c.mu.RLock()
	e, ok := c.entries[email]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.Invalidate(email)
		return nil, false
	}
	u := e.user
	return &u, true
}

// Set stores a snapshot of user under email with the configured TTL.
func (c *UserCache) Set(email string, user *models.User) {
	c.mu.Lock()
	c.entries[email] = entry{user: *user, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate evicts the entry for email, if present.
func (c *UserCache) Invalidate(email string) {
	c.mu.Lock()
	delete(c.entries, email)
	c.mu.Unlock()
}

// CachedUsers decorates a users.Repository with cache-aside reads and
// eviction on password mutation. It is the single choke point for
// invalidation: no other caller needs to remember to evict.
type CachedUsers struct {
	inner users.Repository
	cache *UserCache
}

// NewCachedUsers wraps inner with the given cache.
func NewCachedUsers(inner users.Repository, cache *UserCache) *CachedUsers {
	return &CachedUsers{inner: inner, cache: cache}
}

// Create inserts through to storage. New users are not proactively cached.
func (r *CachedUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	return r.inner.Create(ctx, user)
}

// GetByEmail serves a cached snapshot when present, otherwise queries
// storage and populates the cache on a hit in storage.
func (r *CachedUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := r.cache.Get(email); ok {
		return u, nil
	}
	u, err := r.inner.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	r.cache.Set(email, u)
	return u, nil
}

// UpdateLastLogin passes through; the cached snapshot may keep a stale
// last-login for at most the TTL, which is acceptable for an audit field.
func (r *CachedUsers) UpdateLastLogin(ctx context.Context, userID int64) error {
	return r.inner.UpdateLastLogin(ctx, userID)
}

// UpdatePassword updates storage and, on success, evicts the entry so the
// old hash can never be used to authenticate past this point.
func (r *CachedUsers) UpdatePassword(ctx context.Context, email string, passwordHash string) error {
	if err := r.inner.UpdatePassword(ctx, email, passwordHash); err != nil {
		return err
	}
	r.cache.Invalidate(email)
	return nil
}

// Invalidate exposes eviction for password mutations that bypass this
// decorator (the transactional reset path writes through a tx-bound repo).
func (r *CachedUsers) Invalidate(email string) {
	r.cache.Invalidate(email)
}
