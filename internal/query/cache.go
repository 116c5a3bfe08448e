package query

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const DefaultStaleTime = 60 * time.Second

// Key identifies one cached read. Params is the sorted query encoding, so
// two filter sets with the same values always map to the same key.
type Key struct {
	Resource string
	Params   string
}

func NewKey(resource string, params url.Values) Key {
	return Key{Resource: resource, Params: params.Encode()}
}

func (k Key) String() string {
	if k.Params == "" {
		return k.Resource
	}
	return k.Resource + "?" + k.Params
}

type entry struct {
	value     any
	fetchedAt time.Time
	stale     bool
}

// Cache holds read results per Key. Entries are fresh for staleTime and are
// never refetched in the background; a stale entry is only replaced by the
// next read.
type Cache struct {
	mu        sync.Mutex
	entries   map[Key]*entry
	versions  map[string]uint64
	epoch     uint64
	staleTime time.Duration
	flights   singleflight.Group
	metrics   *Metrics
	now       func() time.Time
}

func New(staleTime time.Duration, metrics *Metrics) *Cache {
	if staleTime <= 0 {
		staleTime = DefaultStaleTime
	}
	return &Cache{
		entries:   make(map[Key]*entry),
		versions:  make(map[string]uint64),
		staleTime: staleTime,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Fetch returns the fresh cached value for key or runs fetch. Identical
// concurrent reads share one fetch. The shared fetch does not inherit the
// caller's cancellation: a caller that gives up only stops waiting.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		if value, typed := e.value.(T); typed && !e.stale && c.now().Sub(e.fetchedAt) < c.staleTime {
			c.mu.Unlock()
			c.metrics.observe(key.Resource, "hit")
			return value, nil
		}
		c.metrics.observe(key.Resource, "stale")
	} else {
		c.metrics.observe(key.Resource, "miss")
	}
	version := c.versionLocked(key.Resource)
	c.mu.Unlock()

	// The version is part of the flight key, so a read issued after an
	// invalidation never joins a flight that started before it.
	flightKey := fmt.Sprintf("%s#%d", key, version)
	detached := context.WithoutCancel(ctx)

	result := c.flights.DoChan(flightKey, func() (any, error) {
		value, err := fetch(detached)
		if err != nil {
			return nil, err
		}
		c.store(key, value, version)
		return value, nil
	})

	select {
	case res := <-result:
		if res.Err != nil {
			return zero, res.Err
		}
		value, ok := res.Val.(T)
		if !ok {
			return zero, fmt.Errorf("cache entry %s holds %T", key, res.Val)
		}
		return value, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Invalidate marks every entry of the given resources stale. A resource
// also covers its dotted children: "users" covers "users.detail".
func (c *Cache) Invalidate(resources ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, resource := range resources {
		c.versions[resource]++
		for key, e := range c.entries {
			if covers(resource, key.Resource) {
				e.stale = true
			}
		}
	}
}

// Clear drops everything. Used when the session changes hands.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[Key]*entry)
	c.epoch++
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// store saves a fetched value. If the resource was invalidated while the
// fetch was running the value is kept but already stale.
func (c *Cache) store(key Key, value any, version uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &entry{
		value:     value,
		fetchedAt: c.now(),
		stale:     c.versionLocked(key.Resource) != version,
	}
}

// versionLocked sums the invalidation counters of the resource and every
// dotted parent, plus the clear epoch. Any invalidation that covers the
// resource changes the sum.
func (c *Cache) versionLocked(resource string) uint64 {
	version := c.epoch
	for name := resource; name != ""; name = parent(name) {
		version += c.versions[name]
	}
	return version
}

func covers(family string, resource string) bool {
	return resource == family || strings.HasPrefix(resource, family+".")
}

func parent(resource string) string {
	i := strings.LastIndexByte(resource, '.')
	if i < 0 {
		return ""
	}
	return resource[:i]
}
