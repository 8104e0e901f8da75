package search

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/skillscout/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	cache := NewCache(DefaultTTL)
	cache.Put("rag tutorial", 500, []types.Candidate{
		{Key: "langchain-ai/langchain", StarCount: 110000, Description: "LLM framework"},
	})
	cache.Put("docker hands-on", 100, nil)
	require.NoError(t, SaveSnapshot(cache, path))

	restored := NewCache(DefaultTTL)
	require.NoError(t, LoadSnapshot(restored, path))
	assert.Equal(t, 2, restored.Len())

	got, ok := restored.Get("rag tutorial", 500)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "langchain-ai/langchain", got[0].Key)
}

func TestSnapshot_LoadDropsExpiredEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cache := NewCache(DefaultTTL)
	cache.now = func() time.Time { return base.Add(-2 * DefaultTTL) }
	cache.Put("stale query", 500, []types.Candidate{{Key: "old/repo"}})
	cache.now = func() time.Time { return base }
	cache.Put("fresh query", 500, []types.Candidate{{Key: "new/repo"}})
	require.NoError(t, SaveSnapshot(cache, path))

	restored := NewCache(DefaultTTL)
	restored.now = func() time.Time { return base }
	require.NoError(t, LoadSnapshot(restored, path))

	// Expiry is per entry: the stale one is dropped, the fresh one survives.
	assert.Equal(t, 1, restored.Len())
	_, ok := restored.Get("stale query", 500)
	assert.False(t, ok)
	_, ok = restored.Get("fresh query", 500)
	assert.True(t, ok)
}

func TestLoadSnapshot_MissingFileIsEmpty(t *testing.T) {
	cache := NewCache(DefaultTTL)
	err := LoadSnapshot(cache, filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, cache.Len())
}
