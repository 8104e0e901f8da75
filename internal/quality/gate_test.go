package quality

import (
	"testing"

	"github.com/jonathan/skillscout/internal/types"
	"github.com/stretchr/testify/assert"
)

func candidates(stars []int, descriptions []string) []types.Candidate {
	out := make([]types.Candidate, len(stars))
	for i := range stars {
		out[i] = types.Candidate{Key: "owner/repo", StarCount: stars[i]}
		if i < len(descriptions) {
			out[i].Description = descriptions[i]
		}
	}
	return out
}

func TestEvaluate_EmptyAlwaysRejects(t *testing.T) {
	verdict := Evaluate(nil, 500)
	assert.False(t, verdict.Acceptable)
	assert.Contains(t, verdict.Reason, "empty")

	verdict = Evaluate([]types.Candidate{}, 500)
	assert.False(t, verdict.Acceptable)
	assert.Contains(t, verdict.Reason, "empty")
}

func TestEvaluate_TooFewReportsCount(t *testing.T) {
	verdict := Evaluate(candidates([]int{1000, 2000}, []string{"a", "b"}), 500)
	assert.False(t, verdict.Acceptable)
	assert.Contains(t, verdict.Reason, "too few")
	assert.Contains(t, verdict.Reason, "2")
}

func TestEvaluate_LowStarRatio(t *testing.T) {
	// 4 of 5 below threshold: 80% > 70%.
	verdict := Evaluate(candidates(
		[]int{100, 200, 300, 400, 9000},
		[]string{"a", "b", "c", "d", "e"},
	), 500)
	assert.False(t, verdict.Acceptable)
	assert.Contains(t, verdict.Reason, "low star ratio")

	// Exactly 70% low is tolerated (rule fires strictly above the ratio):
	// 7 of 10 below threshold passes, 8 of 10 fails.
	stars := []int{100, 100, 100, 100, 100, 100, 100, 900, 900, 900}
	descs := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	assert.True(t, Evaluate(candidates(stars, descs), 500).Acceptable)

	stars[7] = 100
	verdict = Evaluate(candidates(stars, descs), 500)
	assert.False(t, verdict.Acceptable)
	assert.Contains(t, verdict.Reason, "low star ratio")
}

func TestEvaluate_MissingDescriptions(t *testing.T) {
	// 3 of 5 without a description: 60% > 50%.
	verdict := Evaluate(candidates(
		[]int{900, 900, 900, 900, 900},
		[]string{"a", "b", "", "", ""},
	), 500)
	assert.False(t, verdict.Acceptable)
	assert.Contains(t, verdict.Reason, "missing descriptions")
}

func TestEvaluate_OrderOfChecks(t *testing.T) {
	// Both rules violated; the star rule runs first and names the reason.
	verdict := Evaluate(candidates(
		[]int{1, 2, 3, 4, 5},
		[]string{"", "", "", "", ""},
	), 500)
	assert.False(t, verdict.Acceptable)
	assert.Contains(t, verdict.Reason, "low star ratio")
}

func TestEvaluate_Accepts(t *testing.T) {
	verdict := Evaluate(candidates(
		[]int{900, 1200, 50, 7000, 300},
		[]string{"a", "b", "c", "", "e"},
	), 500)
	assert.True(t, verdict.Acceptable)
	assert.Empty(t, verdict.Reason)
}

func TestEvaluate_Deterministic(t *testing.T) {
	pool := candidates([]int{100, 900, 900, 900}, []string{"a", "b", "c", "d"})
	first := Evaluate(pool, 500)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Evaluate(pool, 500))
	}
}

func TestEvaluate_ThresholdMatters(t *testing.T) {
	pool := candidates([]int{150, 180, 200, 220, 9000}, []string{"a", "b", "c", "d", "e"})

	// At 500 stars, 4 of 5 are low.
	assert.False(t, Evaluate(pool, 500).Acceptable)
	// Relaxed to 100, none are low.
	assert.True(t, Evaluate(pool, 100).Acceptable)
}
