// Package rerank personalizes an accumulated candidate pool into a top-N
// recommendation list. Rerank failures are soft: the coordinator falls back
// to the static catalog.
package rerank

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/skillscout/internal/llm"
	"github.com/jonathan/skillscout/internal/prompts"
	"github.com/jonathan/skillscout/internal/schemas"
	"github.com/jonathan/skillscout/internal/types"
)

// Reranker orders a candidate pool by fit for the user and returns at most
// topN items.
type Reranker interface {
	Rerank(ctx context.Context, candidates []types.Candidate, user types.UserContext, gaps types.SkillGapSet, topN int) ([]types.RankedItem, error)
}

// Error represents a soft rerank failure (generation or parsing). The caller
// degrades to the fallback catalog.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rerank error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("rerank error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// promptSkillLimit caps the known-skill list interpolated into the prompt.
const promptSkillLimit = 8

// LLMReranker implements Reranker on an llm.Client.
type LLMReranker struct {
	client llm.Client
}

// NewLLMReranker creates a reranker backed by the given client.
func NewLLMReranker(client llm.Client) *LLMReranker {
	return &LLMReranker{client: client}
}

// rerankResponse mirrors the schema-validated model output.
type rerankResponse struct {
	Selected []types.RankedItem `json:"selected"`
}

// Rerank asks the model to pick the topN best-fitting candidates.
// Configuration errors propagate unchanged; everything else comes back as
// *Error. Selections that do not name a candidate from the pool are dropped.
func (r *LLMReranker) Rerank(ctx context.Context, candidates []types.Candidate, user types.UserContext, gaps types.SkillGapSet, topN int) ([]types.RankedItem, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	prompt := prompts.Format(prompts.MustGet("recommend.json", "rerank"), map[string]string{
		"TopN":            strconv.Itoa(topN),
		"ExperienceLevel": orDefault(user.ExperienceLevel, "unknown"),
		"KnownSkills":     orDefault(strings.Join(user.SkillNames(promptSkillLimit), ", "), "none listed"),
		"SkillGaps":       orDefault(strings.Join(gaps, ", "), "no clear gaps"),
		"Candidates":      formatCandidates(candidates),
	})

	raw, err := r.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		if types.IsConfiguration(err) {
			return nil, err
		}
		return nil, &Error{Message: "generation failed", Cause: err}
	}

	if err := schemas.Validate(schemas.Rerank, []byte(raw)); err != nil {
		return nil, &Error{Message: "response failed schema validation", Cause: err}
	}

	var response rerankResponse
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		return nil, &Error{Message: "response is not valid JSON", Cause: err}
	}

	pool := make(map[string]types.Candidate, len(candidates))
	for _, c := range candidates {
		pool[c.Key] = c
	}

	items := make([]types.RankedItem, 0, topN)
	for _, item := range response.Selected {
		source, ok := pool[item.Key]
		if !ok {
			// The model invented a repository; do not recommend it.
			continue
		}
		if item.URL == "" {
			item.URL = source.URL
		}
		if item.StarCount == 0 {
			item.StarCount = source.StarCount
		}
		items = append(items, item)
		if len(items) == topN {
			break
		}
	}
	return items, nil
}

// formatCandidates renders the pool as a numbered list for the prompt.
func formatCandidates(candidates []types.Candidate) string {
	var sb strings.Builder
	for i, c := range candidates {
		desc := c.Description
		if desc == "" {
			desc = "no description"
		}
		fmt.Fprintf(&sb, "%d. %s (%d stars) - %s\n", i+1, c.Key, c.StarCount, desc)
	}
	return sb.String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
