package search

import (
	"context"

	"github.com/jonathan/skillscout/internal/types"
)

// CachedSource fronts a Source with a TTL cache: a fresh hit short-circuits
// the external call, and only successful results are stored. Errors are never
// cached; a failed query is retried on the next request.
type CachedSource struct {
	source Source
	cache  *Cache
}

// NewCachedSource wraps source with cache. A nil cache gets the default TTL.
func NewCachedSource(source Source, cache *Cache) *CachedSource {
	if cache == nil {
		cache = NewCache(DefaultTTL)
	}
	return &CachedSource{source: source, cache: cache}
}

// Search serves from cache when fresh, otherwise delegates and caches the
// result.
func (c *CachedSource) Search(ctx context.Context, query string, starThreshold int) ([]types.Candidate, error) {
	if candidates, ok := c.cache.Get(query, starThreshold); ok {
		return candidates, nil
	}

	candidates, err := c.source.Search(ctx, query, starThreshold)
	if err != nil {
		return nil, err
	}

	c.cache.Put(query, starThreshold, candidates)
	return candidates, nil
}
