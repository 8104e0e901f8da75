package types

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MaxAttempts bounds the negotiation: one initial pass plus two decision
// rounds. Once the attempt counter reaches this value the coordinator stops
// asking and falls back to the static catalog.
const MaxAttempts = 3

// RetryState is the serializable snapshot of a suspended negotiation. It is
// returned to the caller inside a NeedsDecision result and passed back,
// unchanged, to Resume. The core holds no copy between calls; the caller owns
// the state and may persist it or move it across processes.
type RetryState struct {
	// ID correlates log lines across the suspended and resumed halves of one
	// negotiation.
	ID            string      `json:"id" validate:"required"`
	Accumulated   []Candidate `json:"accumulated"`
	IssuedQueries []string    `json:"issued_queries"`
	Attempt       int         `json:"attempt" validate:"gte=0,lte=3"`
	StarThreshold int         `json:"star_threshold" validate:"gt=0"`
}

// NewRetryState creates the state for a fresh negotiation at the given star
// threshold.
func NewRetryState(starThreshold int) *RetryState {
	return &RetryState{
		ID:            uuid.New().String(),
		StarThreshold: starThreshold,
	}
}

// Validate checks the state a caller handed back to Resume.
func (s *RetryState) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

// MarshalState serializes a RetryState for caller-side persistence.
func MarshalState(s *RetryState) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("retry state is nil")
	}
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalState deserializes and validates a persisted RetryState.
func UnmarshalState(data []byte) (*RetryState, error) {
	var s RetryState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse retry state: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid retry state: %w", err)
	}
	return &s, nil
}
