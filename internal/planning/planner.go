package planning

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/jonathan/skillscout/internal/llm"
	"github.com/jonathan/skillscout/internal/prompts"
	"github.com/jonathan/skillscout/internal/schemas"
	"github.com/jonathan/skillscout/internal/types"
)

// Planner produces the initial search plan for a set of skill gaps.
type Planner interface {
	Plan(ctx context.Context, user types.UserContext, gaps types.SkillGapSet) (*types.SearchPlan, error)
}

// Replanner proposes new search angles after the quality gate rejected an
// attempt.
type Replanner interface {
	Replan(ctx context.Context, priorQueries []string, rejectionReason string, user types.UserContext, gaps types.SkillGapSet) (*types.ReplanResult, error)
}

// promptLimit caps list lengths interpolated into prompts.
const promptLimit = 8

// LLMPlanner implements Planner and Replanner on an llm.Client.
type LLMPlanner struct {
	client llm.Client
}

// NewLLMPlanner creates a planner backed by the given client.
func NewLLMPlanner(client llm.Client) *LLMPlanner {
	return &LLMPlanner{client: client}
}

// Plan asks the model for a search plan. Configuration errors propagate;
// unparseable output comes back as *ParseError for the caller to degrade on.
// When the structured plan is empty, one more attempt is made with the
// multi-angle query prompt before giving up.
func (p *LLMPlanner) Plan(ctx context.Context, user types.UserContext, gaps types.SkillGapSet) (*types.SearchPlan, error) {
	prompt := prompts.Format(prompts.MustGet("recommend.json", "search_plan"), promptData(user, gaps))

	raw, err := p.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		if types.IsConfiguration(err) {
			return nil, err
		}
		return nil, &ParseError{Stage: "plan", Message: "generation failed", Cause: err}
	}

	plan, err := parsePlan(raw)
	if err != nil {
		return nil, err
	}

	if !plan.Skip && len(plan.Queries) == 0 {
		return p.legacyPlan(ctx, user, gaps)
	}
	return plan, nil
}

// legacyPlan retries query generation with the older multi-angle prompt.
func (p *LLMPlanner) legacyPlan(ctx context.Context, user types.UserContext, gaps types.SkillGapSet) (*types.SearchPlan, error) {
	prompt := prompts.Format(prompts.MustGet("recommend.json", "legacy_queries"), promptData(user, gaps))

	raw, err := p.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		if types.IsConfiguration(err) {
			return nil, err
		}
		return nil, &ParseError{Stage: "plan", Message: "legacy query generation failed", Cause: err}
	}

	var parsed struct {
		Queries []types.SearchQuery `json:"queries"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, &ParseError{Stage: "plan", Message: "legacy queries are not valid JSON", Cause: err}
	}

	return &types.SearchPlan{Queries: clampQueries(parsed.Queries, types.MaxPlanQueries)}, nil
}

// Replan asks the model for new angles given the failure. Stop means the
// model judged no viable angle remains.
func (p *LLMPlanner) Replan(ctx context.Context, priorQueries []string, rejectionReason string, user types.UserContext, gaps types.SkillGapSet) (*types.ReplanResult, error) {
	data := promptData(user, gaps)
	data["PreviousQueries"] = strings.Join(priorQueries, "; ")
	data["RejectionReason"] = rejectionReason
	prompt := prompts.Format(prompts.MustGet("recommend.json", "replan"), data)

	raw, err := p.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		if types.IsConfiguration(err) {
			return nil, err
		}
		return nil, &ParseError{Stage: "replan", Message: "generation failed", Cause: err}
	}

	if err := schemas.Validate(schemas.Replan, []byte(raw)); err != nil {
		return nil, &ParseError{Stage: "replan", Message: "response failed schema validation", Cause: err}
	}

	var result types.ReplanResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, &ParseError{Stage: "replan", Message: "response is not valid JSON", Cause: err}
	}

	result.Queries = clampQueries(result.Queries, types.MaxReplanQueries)
	return &result, nil
}

// parsePlan validates and decodes a search-plan response.
func parsePlan(raw string) (*types.SearchPlan, error) {
	if err := schemas.Validate(schemas.SearchPlan, []byte(raw)); err != nil {
		return nil, &ParseError{Stage: "plan", Message: "response failed schema validation", Cause: err}
	}

	var plan types.SearchPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, &ParseError{Stage: "plan", Message: "response is not valid JSON", Cause: err}
	}

	plan.Queries = clampQueries(plan.Queries, types.MaxPlanQueries)
	return &plan, nil
}

// clampQueries drops blank queries, orders by priority, and caps the count.
func clampQueries(queries []types.SearchQuery, limit int) []types.SearchQuery {
	kept := make([]types.SearchQuery, 0, len(queries))
	for _, q := range queries {
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		kept = append(kept, q)
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Priority < kept[j].Priority })

	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

// promptData assembles the shared placeholder values for all prompts.
func promptData(user types.UserContext, gaps types.SkillGapSet) map[string]string {
	level := user.ExperienceLevel
	if level == "" {
		level = "unknown"
	}
	known := strings.Join(user.SkillNames(promptLimit), ", ")
	if known == "" {
		known = "none listed"
	}
	gapList := strings.Join(gaps, ", ")
	if gapList == "" {
		gapList = "no clear gaps"
	}
	role := user.TargetRole
	if role == "" {
		role = "AI agent development"
	}

	return map[string]string{
		"ExperienceLevel": level,
		"KnownSkills":     known,
		"SkillGaps":       gapList,
		"TargetRole":      role,
	}
}

// LegacyQuery builds the single-shot fallback query straight from the gap
// set: the first three gaps joined. Empty when there are no gaps.
func LegacyQuery(gaps types.SkillGapSet) string {
	n := len(gaps)
	if n > 3 {
		n = 3
	}
	return strings.Join(gaps[:n], " ")
}
