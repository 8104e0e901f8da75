package types

// Query count limits enforced on planner output. The planner prompt asks for
// the same limits; these constants clamp whatever comes back.
const (
	// MaxPlanQueries caps the queries in one search plan.
	MaxPlanQueries = 3
	// MaxReplanQueries caps the new angles one replanning round may add.
	MaxReplanQueries = 2
)

// SearchQuery is one planned external search. Priority orders dispatch;
// lower values run first.
type SearchQuery struct {
	Text      string `json:"text"`
	Rationale string `json:"rationale,omitempty"`
	Priority  int    `json:"priority"`
}

// SearchPlan is the planner's output for one recommendation request. When
// Skip is set the user's skills already cover the gaps and the coordinator
// goes straight to the static catalog.
type SearchPlan struct {
	Skip       bool          `json:"skip"`
	SkipReason string        `json:"skip_reason,omitempty"`
	Queries    []SearchQuery `json:"queries"`
}

// ReplanResult is the replanner's output after a failed quality gate: up to
// MaxReplanQueries new angles, or a stop signal when no better angle exists.
type ReplanResult struct {
	Queries    []SearchQuery `json:"queries"`
	Stop       bool          `json:"stop"`
	StopReason string        `json:"stop_reason,omitempty"`
}
