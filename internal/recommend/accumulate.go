package recommend

import "github.com/jonathan/skillscout/internal/types"

// Accumulator is the deduplicating, order-preserving pool of candidates
// collected across the attempts of one negotiation. It only ever grows;
// a key seen once is never replaced, whatever later attempts return for it.
type Accumulator struct {
	seen       map[string]bool
	candidates []types.Candidate
}

// NewAccumulator builds a pool seeded with previously accumulated candidates
// (from a restored RetryState).
func NewAccumulator(existing []types.Candidate) *Accumulator {
	acc := &Accumulator{seen: make(map[string]bool, len(existing))}
	acc.Merge(existing)
	return acc
}

// Merge appends the incoming candidates whose keys are not yet present,
// preserving first-seen order. Blank keys are dropped.
func (a *Accumulator) Merge(incoming []types.Candidate) {
	for _, c := range incoming {
		if c.Key == "" || a.seen[c.Key] {
			continue
		}
		a.seen[c.Key] = true
		a.candidates = append(a.candidates, c)
	}
}

// Candidates returns a copy of the pool in first-seen order.
func (a *Accumulator) Candidates() []types.Candidate {
	out := make([]types.Candidate, len(a.candidates))
	copy(out, a.candidates)
	return out
}

// Len reports the pool size.
func (a *Accumulator) Len() int {
	return len(a.candidates)
}

// MergeCandidates is the pure form of Merge: a new slice holding existing
// plus the incoming candidates whose keys are new, first-seen order
// preserved. Neither input is modified.
func MergeCandidates(existing, incoming []types.Candidate) []types.Candidate {
	acc := NewAccumulator(existing)
	acc.Merge(incoming)
	return acc.Candidates()
}
