package types

import "fmt"

// DecisionValue identifies one recovery action the caller may pick when the
// quality gate rejects the accumulated candidates.
type DecisionValue string

// Recovery decisions offered alongside a NeedsDecision result.
const (
	// DecisionRefine asks the replanner for new search angles.
	DecisionRefine DecisionValue = "refine"
	// DecisionRelaxThreshold lowers the star bar and searches again.
	DecisionRelaxThreshold DecisionValue = "relax_threshold"
	// DecisionUseFallback accepts the static catalog immediately.
	DecisionUseFallback DecisionValue = "use_fallback"
)

// ParseDecisionValue converts caller input (CLI flag, API field) into a
// DecisionValue.
func ParseDecisionValue(s string) (DecisionValue, error) {
	switch DecisionValue(s) {
	case DecisionRefine, DecisionRelaxThreshold, DecisionUseFallback:
		return DecisionValue(s), nil
	default:
		return "", fmt.Errorf("unknown decision %q (expected refine, relax_threshold, or use_fallback)", s)
	}
}

// DecisionOption is one entry in the decision menu shown to the caller.
type DecisionOption struct {
	Value       DecisionValue `json:"value"`
	Label       string        `json:"label"`
	Description string        `json:"description"`
}
