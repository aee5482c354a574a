// Package cache provides the in-memory response cache used by the REST
// fetch core. Entries are keyed by the verbatim request endpoint and
// expire on read against one of two TTL classes; expired entries remain
// available as a degraded fallback until capacity evicts them.
package cache

import (
	"encoding/json"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Class selects the TTL applied to an entry at read time. Expensive
// lookups (paginated commit history, contributor stats) stay fresh
// longer than cheap ones.
type Class int

const (
	ClassStandard Class = iota
	ClassExpensive
)

// Policy maps cache classes to TTLs. It is injectable so tests can pin
// windows without timers.
type Policy struct {
	StandardTTL  time.Duration
	ExpensiveTTL time.Duration
}

// DefaultPolicy returns the TTL windows the dashboard uses.
func DefaultPolicy() Policy {
	return Policy{
		StandardTTL:  10 * time.Minute,
		ExpensiveTTL: 30 * time.Minute,
	}
}

func (p Policy) ttl(c Class) time.Duration {
	if c == ClassExpensive {
		return p.ExpensiveTTL
	}
	return p.StandardTTL
}

type entry struct {
	payload  json.RawMessage
	storedAt time.Time
}

// DefaultSize bounds the backing LRU. The working set of a dashboard
// session is far smaller; the bound exists so stale entries kept for
// fallback cannot grow without limit.
const DefaultSize = 4096

// Cache stores raw response payloads. Safe for concurrent use.
type Cache struct {
	policy Policy
	now    func() time.Time
	lru    *lru.Cache[string, entry]
}

// New creates a cache holding at most size entries. A size <= 0 uses
// DefaultSize.
func New(size int, policy Policy) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	l, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{policy: policy, now: time.Now, lru: l}, nil
}

// WithClock overrides the time source. Tests use this to cross TTL
// boundaries without sleeping.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Get returns the payload for key when it is younger than the class
// TTL. An expired entry is treated as absent here; GetStale still sees
// it.
func (c *Cache) Get(key string, class Class) (json.RawMessage, bool) {
	e, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) > c.policy.ttl(class) {
		return nil, false
	}
	return e.payload, true
}

// GetStale returns the payload for key regardless of age. Used as the
// degraded fallback when a live call fails due to rate limiting or a
// network error.
func (c *Cache) GetStale(key string) (json.RawMessage, bool) {
	e, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	return e.payload, true
}

// Set stores payload under key, overwriting any existing entry with a
// fresh timestamp.
func (c *Cache) Set(key string, payload json.RawMessage) {
	c.lru.Add(key, entry{payload: payload, storedAt: c.now()})
}

// Len returns the number of entries currently held, expired included.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.lru.Purge()
}
