package search

import (
	"strings"
	"sync"
	"time"

	"github.com/jonathan/skillscout/internal/types"
)

// DefaultTTL is how long one search result stays servable: 24 hours.
const DefaultTTL = 24 * time.Hour

// cacheKey identifies one cached search: the normalized query text plus the
// star threshold it ran against. The same text at a different threshold is a
// different search.
type cacheKey struct {
	query         string
	starThreshold int
}

// normalizeQuery canonicalizes query text for cache lookup.
func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

type cacheEntry struct {
	candidates []types.Candidate
	storedAt   time.Time
}

// Cache is a TTL-bounded in-memory store of search results. Expiry is
// per entry and checked at read time; an expired entry behaves exactly like
// an absent one. Safe for concurrent use across unrelated recommendation
// requests.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration

	// now is swappable in tests.
	now func() time.Time
}

// NewCache creates a cache. A ttl of zero means DefaultTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached candidates for a query at a threshold, or false when
// absent or older than the TTL.
func (c *Cache) Get(query string, starThreshold int) ([]types.Candidate, bool) {
	key := cacheKey{query: normalizeQuery(query), starThreshold: starThreshold}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(entry.storedAt) >= c.ttl {
		return nil, false
	}

	out := make([]types.Candidate, len(entry.candidates))
	copy(out, entry.candidates)
	return out, true
}

// Put stores the candidates for a query at a threshold, stamping the current
// time.
func (c *Cache) Put(query string, starThreshold int, candidates []types.Candidate) {
	key := cacheKey{query: normalizeQuery(query), starThreshold: starThreshold}

	stored := make([]types.Candidate, len(candidates))
	copy(stored, candidates)

	c.mu.Lock()
	c.entries[key] = cacheEntry{candidates: stored, storedAt: c.now()}
	c.mu.Unlock()
}

// Len reports the number of entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
