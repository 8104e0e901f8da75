package recommend

import (
	"testing"

	"github.com/jonathan/skillscout/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulator_DeduplicatesByKey(t *testing.T) {
	acc := NewAccumulator(nil)
	acc.Merge([]types.Candidate{
		{Key: "a/one", StarCount: 100},
		{Key: "b/two", StarCount: 200},
	})
	acc.Merge([]types.Candidate{
		{Key: "a/one", StarCount: 999, Description: "later duplicate"},
		{Key: "c/three", StarCount: 300},
	})

	got := acc.Candidates()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a/one", "b/two", "c/three"}, keysOf(got))
	// First-seen entry wins; the duplicate never overwrites.
	assert.Equal(t, 100, got[0].StarCount)
}

func TestAccumulator_SeededFromState(t *testing.T) {
	prior := []types.Candidate{{Key: "a/one"}, {Key: "b/two"}}
	acc := NewAccumulator(prior)
	acc.Merge([]types.Candidate{{Key: "b/two"}, {Key: "c/three"}})

	assert.Equal(t, []string{"a/one", "b/two", "c/three"}, keysOf(acc.Candidates()))
	assert.Equal(t, 3, acc.Len())
}

func TestAccumulator_DropsBlankKeys(t *testing.T) {
	acc := NewAccumulator(nil)
	acc.Merge([]types.Candidate{{Key: ""}, {Key: "a/one"}})
	assert.Equal(t, 1, acc.Len())
}

func TestMergeCandidates_Pure(t *testing.T) {
	existing := []types.Candidate{{Key: "a/one"}}
	incoming := []types.Candidate{{Key: "a/one"}, {Key: "b/two"}}

	merged := MergeCandidates(existing, incoming)
	assert.Equal(t, []string{"a/one", "b/two"}, keysOf(merged))

	// Inputs untouched.
	assert.Len(t, existing, 1)
	assert.Len(t, incoming, 2)
}

func keysOf(candidates []types.Candidate) []string {
	keys := make([]string, len(candidates))
	for i, c := range candidates {
		keys[i] = c.Key
	}
	return keys
}
