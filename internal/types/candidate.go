package types

// Candidate is one externally sourced project before ranking. Key is the
// unique identity ("owner/name" for GitHub repositories) used for
// de-duplication across search attempts.
type Candidate struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	StarCount   int    `json:"star_count"`
	Description string `json:"description"`
	OriginQuery string `json:"origin_query,omitempty"`
}

// RankedItem is one recommendation after reranking (or catalog fallback),
// carrying a personalized reason and effort metadata.
type RankedItem struct {
	Key          string `json:"key"`
	URL          string `json:"url"`
	StarCount    int    `json:"star_count"`
	Reason       string `json:"reason"`
	Difficulty   string `json:"difficulty,omitempty"`
	TimeEstimate string `json:"time_estimate,omitempty"`
}

// QualityVerdict is the outcome of the quality gate over an accumulated
// candidate pool.
type QualityVerdict struct {
	Acceptable bool   `json:"acceptable"`
	Reason     string `json:"reason,omitempty"`
}
