package search

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/skillscout/internal/types"
)

// snapshotEntry is the persisted form of one cache entry. Each entry carries
// its own timestamp; loading drops entries that have already expired rather
// than invalidating the whole file.
type snapshotEntry struct {
	Query         string            `json:"query"`
	StarThreshold int               `json:"star_threshold"`
	Candidates    []types.Candidate `json:"candidates"`
	StoredAt      time.Time         `json:"stored_at"`
}

// SaveSnapshot writes the cache contents to path as a flat JSON list.
func SaveSnapshot(c *Cache, path string) error {
	c.mu.RLock()
	snapshot := make([]snapshotEntry, 0, len(c.entries))
	for key, entry := range c.entries {
		snapshot = append(snapshot, snapshotEntry{
			Query:         key.query,
			StarThreshold: key.starThreshold,
			Candidates:    entry.candidates,
			StoredAt:      entry.storedAt,
		})
	}
	c.mu.RUnlock()

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot restores cache contents from path, keeping only entries still
// inside the cache's TTL. A missing file is not an error; the cache starts
// empty.
func LoadSnapshot(c *Cache, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cache snapshot: %w", err)
	}

	var snapshot []snapshotEntry
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to parse cache snapshot: %w", err)
	}

	now := c.now()
	c.mu.Lock()
	for _, entry := range snapshot {
		if now.Sub(entry.StoredAt) >= c.ttl {
			continue
		}
		key := cacheKey{query: normalizeQuery(entry.Query), starThreshold: entry.StarThreshold}
		c.entries[key] = cacheEntry{candidates: entry.Candidates, storedAt: entry.StoredAt}
	}
	c.mu.Unlock()
	return nil
}
