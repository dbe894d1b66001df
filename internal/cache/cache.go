// Package cache provides a thread-safe in-memory cache whose entries expire
// according to a per-entry policy.
package cache

import (
	"sync"
	"time"
)

// Policy decides whether an entry stored at storedAt is still fresh at now.
type Policy interface {
	Fresh(storedAt, now time.Time) bool
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(storedAt, now time.Time) bool

func (f PolicyFunc) Fresh(storedAt, now time.Time) bool { return f(storedAt, now) }

type neverExpire struct{}

func (neverExpire) Fresh(time.Time, time.Time) bool { return true }

// Never keeps entries fresh until they are invalidated.
func Never() Policy { return neverExpire{} }

// Manual keeps entries fresh until an explicit Invalidate. It behaves like Never
// but documents that an operator action is the refresh trigger.
func Manual() Policy { return neverExpire{} }

type ttl time.Duration

func (d ttl) Fresh(storedAt, now time.Time) bool {
	return now.Sub(storedAt) <= time.Duration(d)
}

// TTL expires an entry once more than d has elapsed since it was stored.
// A non-positive d means the entry never expires.
func TTL(d time.Duration) Policy {
	if d <= 0 {
		return neverExpire{}
	}
	return ttl(d)
}

type until time.Time

func (t until) Fresh(_, now time.Time) bool {
	return now.Before(time.Time(t))
}

// Until expires an entry at t regardless of when it was stored.
func Until(t time.Time) Policy { return until(t) }

type all []Policy

func (ps all) Fresh(storedAt, now time.Time) bool {
	for _, p := range ps {
		if !p.Fresh(storedAt, now) {
			return false
		}
	}
	return true
}

// All is fresh only while every policy is fresh, so the earliest expiry wins.
func All(policies ...Policy) Policy {
	out := make(all, 0, len(policies))
	for _, p := range policies {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// State is the result of a lookup.
type State int

const (
	Missing State = iota
	Fresh
	Stale
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "missing"
	}
}

// Entry is a cached value with its insertion time and expiry policy.
type Entry[V any] struct {
	Value    V
	StoredAt time.Time
	Policy   Policy
}

// Cache maps keys to entries. Expired entries are kept so callers can fall back
// to them when a refresh fails; use Purge or InvalidateFunc to drop them.
type Cache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]Entry[V]
	now     func() time.Time
	closed  bool
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New creates an empty cache.
func New[K comparable, V any](opts ...Option) *Cache[K, V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[K, V]{
		entries: make(map[K]Entry[V]),
		now:     o.now,
	}
}

// Now returns the cache clock's current time.
func (c *Cache[K, V]) Now() time.Time {
	return c.now()
}

// Get returns the entry for key and whether it is fresh, stale or missing.
func (c *Cache[K, V]) Get(key K) (Entry[V], State) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return Entry[V]{}, Missing
	}
	if e.Policy.Fresh(e.StoredAt, c.now()) {
		return e, Fresh
	}
	return e, Stale
}

// Set stores value under key with the given policy and returns the new entry.
// Concurrent writers race; the last one wins. Set on a closed cache is a no-op.
func (c *Cache[K, V]) Set(key K, value V, policy Policy) Entry[V] {
	if policy == nil {
		policy = Never()
	}
	e := Entry[V]{Value: value, StoredAt: c.now(), Policy: policy}
	c.mu.Lock()
	if !c.closed {
		c.entries[key] = e
	}
	c.mu.Unlock()
	return e
}

// Invalidate removes key.
func (c *Cache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateFunc removes every entry for which match returns true and reports
// how many were removed.
func (c *Cache[K, V]) InvalidateFunc(match func(K, Entry[V]) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if match(k, e) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Purge drops entries that are no longer fresh and were stored more than
// retain ago. Younger expired entries stay available as a stale fallback.
func (c *Cache[K, V]) Purge(retain time.Duration) int {
	now := c.now()
	return c.InvalidateFunc(func(_ K, e Entry[V]) bool {
		return !e.Policy.Fresh(e.StoredAt, now) && now.Sub(e.StoredAt) > retain
	})
}

// Len returns the number of stored entries, fresh or stale.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close drops every entry and rejects further writes.
func (c *Cache[K, V]) Close() {
	c.mu.Lock()
	c.entries = make(map[K]Entry[V])
	c.closed = true
	c.mu.Unlock()
}

// Closed reports whether Close has been called.
func (c *Cache[K, V]) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}
