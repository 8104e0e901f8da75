package types

// ResultStatus tags the variants of a RecommendationResult.
type ResultStatus string

// RecommendationResult variants.
const (
	// StatusSuccess carries a bounded list of ranked recommendations.
	StatusSuccess ResultStatus = "success"
	// StatusNeedsDecision suspends the negotiation and carries the decision
	// menu plus the serializable retry state.
	StatusNeedsDecision ResultStatus = "needs_decision"
	// StatusFailed carries a fatal error the caller must surface.
	StatusFailed ResultStatus = "failed"
)

// ErrorKind classifies a failed result.
type ErrorKind string

// Failure kinds surfaced across the core boundary. Only configuration
// problems are fatal; every other failure degrades internally.
const (
	KindConfiguration ErrorKind = "configuration"
)

// RecommendationResult is the tagged union returned by Recommend and Resume.
// Exactly one variant is populated, identified by Status:
//
//   - StatusSuccess: Items (length ≤ requested topN)
//   - StatusNeedsDecision: Options, Reason, State
//   - StatusFailed: Kind, Message
//
// Callers switch on Status; the accessor methods panic-free return zero
// values for the wrong variant.
type RecommendationResult struct {
	Status ResultStatus `json:"status"`

	// Success
	Items []RankedItem `json:"items,omitempty"`

	// NeedsDecision
	Options []DecisionOption `json:"options,omitempty"`
	Reason  string           `json:"reason,omitempty"`
	State   *RetryState      `json:"state,omitempty"`

	// Failed
	Kind    ErrorKind `json:"kind,omitempty"`
	Message string    `json:"message,omitempty"`
}

// Success builds the success variant.
func Success(items []RankedItem) RecommendationResult {
	return RecommendationResult{Status: StatusSuccess, Items: items}
}

// NeedsDecision builds the suspended variant.
func NeedsDecision(options []DecisionOption, reason string, state *RetryState) RecommendationResult {
	return RecommendationResult{
		Status:  StatusNeedsDecision,
		Options: options,
		Reason:  reason,
		State:   state,
	}
}

// Failed builds the fatal variant.
func Failed(kind ErrorKind, message string) RecommendationResult {
	return RecommendationResult{Status: StatusFailed, Kind: kind, Message: message}
}
