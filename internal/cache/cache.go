package cache

import (
	"context"
	"sync"
	"time"
)

// RoomsTTL is how long a supplier room catalog is reused.
const RoomsTTL = 15 * time.Minute

// Cache provides in-memory caching with TTL and request collapsing (singleflight).
// Expired entries are never evicted, only replaced on the next fetch.
type Cache[T any] struct {
	mu       sync.Mutex
	entries  map[string]entry[T]
	inflight map[string]*inflightRequest[T]
	ttl      time.Duration
	now      func() time.Time
}

type entry[T any] struct {
	value     T
	fetchedAt time.Time
}

type inflightRequest[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New creates a new Cache with the specified TTL.
func New[T any](ttl time.Duration, opts ...Option) *Cache[T] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[T]{
		entries:  make(map[string]entry[T]),
		inflight: make(map[string]*inflightRequest[T]),
		ttl:      ttl,
		now:      o.now,
	}
}

// GetOrFetch returns the cached value for key if it is younger than the TTL,
// otherwise it calls fetch and stores the result. Fetch errors are not cached.
// Concurrent misses for the same key share one fetch.
// The boolean reports whether the value came from the cache.
func (c *Cache[T]) GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, bool, error) {
	var zero T

	c.mu.Lock()

	if e, ok := c.entries[key]; ok && c.now().Sub(e.fetchedAt) < c.ttl {
		c.mu.Unlock()
		return e.value, true, nil
	}

	if inflight, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		select {
		case <-inflight.done:
			return inflight.value, false, inflight.err
		case <-ctx.Done():
			return zero, false, context.Cause(ctx)
		}
	}

	inflight := &inflightRequest[T]{done: make(chan struct{})}
	c.inflight[key] = inflight
	c.mu.Unlock()

	value, err := fetch(ctx)

	c.mu.Lock()
	inflight.value = value
	inflight.err = err
	if err == nil {
		c.entries[key] = entry[T]{value: value, fetchedAt: c.now()}
	}
	delete(c.inflight, key)
	c.mu.Unlock()

	close(inflight.done)

	return value, false, err
}

// Invalidate removes a specific key from the cache.
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes all entries from the cache.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry[T])
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
