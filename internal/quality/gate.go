// Package quality decides whether an accumulated candidate pool is worth
// reranking. Evaluate is a pure function: same inputs, same verdict.
package quality

import (
	"fmt"

	"github.com/jonathan/skillscout/internal/types"
)

// Gate thresholds. The rules run in order and the first failure wins.
const (
	// MinCandidates is the smallest pool worth reranking.
	MinCandidates = 3
	// MaxLowStarRatio is the tolerated share of candidates below the star
	// threshold.
	MaxLowStarRatio = 0.7
	// MaxMissingDescriptionRatio is the tolerated share of candidates
	// without a description.
	MaxMissingDescriptionRatio = 0.5
)

// Evaluate checks the pool against the star threshold and returns a verdict
// with a caller-presentable reason on rejection.
func Evaluate(candidates []types.Candidate, starThreshold int) types.QualityVerdict {
	if len(candidates) == 0 {
		return types.QualityVerdict{Reason: "empty: search returned no candidates"}
	}

	if len(candidates) < MinCandidates {
		return types.QualityVerdict{
			Reason: fmt.Sprintf("too few: only %d candidate(s), need at least %d", len(candidates), MinCandidates),
		}
	}

	total := len(candidates)

	lowStars := 0
	for _, c := range candidates {
		if c.StarCount < starThreshold {
			lowStars++
		}
	}
	if float64(lowStars) > float64(total)*MaxLowStarRatio {
		return types.QualityVerdict{
			Reason: fmt.Sprintf("low star ratio: %d of %d candidates below %d stars", lowStars, total, starThreshold),
		}
	}

	missingDesc := 0
	for _, c := range candidates {
		if c.Description == "" {
			missingDesc++
		}
	}
	if float64(missingDesc) > float64(total)*MaxMissingDescriptionRatio {
		return types.QualityVerdict{
			Reason: fmt.Sprintf("missing descriptions: %d of %d candidates have none", missingDesc, total),
		}
	}

	return types.QualityVerdict{Acceptable: true}
}
