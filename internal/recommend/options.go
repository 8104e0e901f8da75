package recommend

import (
	"fmt"

	"github.com/jonathan/skillscout/internal/types"
)

// decisionOptions builds the three-entry recovery menu shown to the caller
// when the quality gate rejects an attempt.
func decisionOptions(reason string, starThreshold, relaxedThreshold int) []types.DecisionOption {
	return []types.DecisionOption{
		{
			Value:       types.DecisionRefine,
			Label:       "Search from a different angle",
			Description: fmt.Sprintf("Current problem: %s. Let the planner try a new strategy.", reason),
		},
		{
			Value:       types.DecisionRelaxThreshold,
			Label:       fmt.Sprintf("Relax the star requirement (%d → %d)", starThreshold, relaxedThreshold),
			Description: "May surface smaller but practical projects.",
		},
		{
			Value:       types.DecisionUseFallback,
			Label:       "Use the built-in catalog",
			Description: "Recommend from the curated list of proven projects.",
		},
	}
}
