// Package recommend implements the quality-gated recommendation search loop:
// plan, search, gate, and either rerank, suspend for a caller decision, or
// fall back to the static catalog.
package recommend

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skillscout/internal/catalog"
	"github.com/jonathan/skillscout/internal/planning"
	"github.com/jonathan/skillscout/internal/quality"
	"github.com/jonathan/skillscout/internal/rerank"
	"github.com/jonathan/skillscout/internal/search"
	"github.com/jonathan/skillscout/internal/types"
)

// Default star thresholds for the quality gate.
const (
	// DefaultStarThreshold is the initial quality bar.
	DefaultStarThreshold = 500
	// RelaxedStarThreshold applies after a RelaxThreshold decision.
	RelaxedStarThreshold = 100
)

// Options tunes the coordinator.
type Options struct {
	// StarThreshold is the initial quality bar; zero means
	// DefaultStarThreshold.
	StarThreshold int
	// RelaxedThreshold applies after a RelaxThreshold decision; zero means
	// RelaxedStarThreshold.
	RelaxedThreshold int
	// OnSearchDegraded observes per-query transient failures that were
	// absorbed (the plan continued without that query's contribution).
	OnSearchDegraded func(query string, err error)
	// OnPlan observes the effective search plan before its queries are
	// dispatched, including replanned and legacy-query rounds.
	OnPlan func(plan *types.SearchPlan)
	// OnPool observes the accumulated pool just before each gate evaluation.
	OnPool func(candidates []types.Candidate, starThreshold int)
	// OnVerdict observes each gate verdict with the attempt it was charged
	// to. An accepted verdict reports the attempt count unchanged.
	OnVerdict func(verdict types.QualityVerdict, attempt int)
}

// Coordinator owns one negotiation at a time: every Recommend or Resume call
// runs to completion and returns either recommendations, a decision menu plus
// serializable state, or a fatal configuration failure. No state is retained
// between calls.
type Coordinator struct {
	planner   planning.Planner
	replanner planning.Replanner
	source    search.Source
	reranker  rerank.Reranker
	opts      Options
}

// New wires a coordinator from its collaborators. The source should normally
// be wrapped in a search.CachedSource. replanner and reranker may be nil;
// the affected paths then degrade straight to the catalog.
func New(planner planning.Planner, replanner planning.Replanner, source search.Source, reranker rerank.Reranker, opts Options) *Coordinator {
	if opts.StarThreshold <= 0 {
		opts.StarThreshold = DefaultStarThreshold
	}
	if opts.RelaxedThreshold <= 0 {
		opts.RelaxedThreshold = RelaxedStarThreshold
	}
	return &Coordinator{
		planner:   planner,
		replanner: replanner,
		source:    source,
		reranker:  reranker,
		opts:      opts,
	}
}

// Recommend runs one full pass: plan, search, gate. On rejection it suspends
// with a decision menu; after too many rejections it stops asking and serves
// the catalog.
func (c *Coordinator) Recommend(ctx context.Context, gaps types.SkillGapSet, user types.UserContext, topN int) types.RecommendationResult {
	state := types.NewRetryState(c.opts.StarThreshold)

	plan, err := c.planner.Plan(ctx, user, gaps)
	if err != nil {
		if types.IsConfiguration(err) {
			return types.Failed(types.KindConfiguration, err.Error())
		}
		// Unparseable plan degrades to the legacy query path.
		plan = &types.SearchPlan{}
	}
	if plan == nil {
		plan = &types.SearchPlan{}
	}

	if plan.Skip {
		return c.fallback(gaps, topN)
	}

	queries := plan.Queries
	if len(queries) == 0 {
		if text := planning.LegacyQuery(gaps); text != "" {
			queries = []types.SearchQuery{{Text: text, Rationale: "direct skill-gap search", Priority: 1}}
		}
	}
	if len(queries) == 0 {
		return c.fallback(gaps, topN)
	}
	c.observePlan(queries)

	acc := NewAccumulator(nil)
	if err := c.runSearches(ctx, queries, state, acc); err != nil {
		return types.Failed(types.KindConfiguration, err.Error())
	}
	state.Accumulated = acc.Candidates()

	return c.gateAndFinish(ctx, state, gaps, user, topN)
}

// Resume continues a suspended negotiation with the caller's decision. The
// state must be the one returned inside the NeedsDecision result; the caller
// owns it in between.
func (c *Coordinator) Resume(ctx context.Context, decision types.DecisionValue, state *types.RetryState, gaps types.SkillGapSet, user types.UserContext, topN int) types.RecommendationResult {
	if state == nil {
		return types.Failed(types.KindConfiguration, "resume called without retry state")
	}
	if err := state.Validate(); err != nil {
		return types.Failed(types.KindConfiguration, "invalid retry state: "+err.Error())
	}

	switch decision {
	case types.DecisionUseFallback:
		return c.fallback(gaps, topN)
	case types.DecisionRelaxThreshold:
		return c.resumeRelaxed(ctx, state, gaps, user, topN)
	case types.DecisionRefine:
		return c.resumeRefined(ctx, state, gaps, user, topN)
	default:
		return types.Failed(types.KindConfiguration, "unknown decision "+string(decision))
	}
}

// resumeRelaxed lowers the star bar and re-runs the issued queries, adding
// one freshly planned angle when a replanner is available. Prior candidates
// stay in the pool.
func (c *Coordinator) resumeRelaxed(ctx context.Context, state *types.RetryState, gaps types.SkillGapSet, user types.UserContext, topN int) types.RecommendationResult {
	// Derive the reason against the threshold the caller saw, then relax.
	reason := rejectionReason(state)
	state.StarThreshold = c.opts.RelaxedThreshold

	queries := make([]types.SearchQuery, 0, len(state.IssuedQueries)+1)
	for i, text := range state.IssuedQueries {
		queries = append(queries, types.SearchQuery{Text: text, Priority: i + 1})
	}

	if c.replanner != nil {
		result, err := c.replanner.Replan(ctx, state.IssuedQueries, reason, user, gaps)
		switch {
		case err != nil && types.IsConfiguration(err):
			return types.Failed(types.KindConfiguration, err.Error())
		case err == nil && !result.Stop && len(result.Queries) > 0:
			extra := result.Queries[0]
			extra.Priority = len(queries) + 1
			queries = append(queries, extra)
		}
		// A soft replan failure just means no extra angle this round.
	}

	if len(queries) == 0 {
		return c.fallback(gaps, topN)
	}
	c.observePlan(queries)

	acc := NewAccumulator(state.Accumulated)
	if err := c.runSearches(ctx, queries, state, acc); err != nil {
		return types.Failed(types.KindConfiguration, err.Error())
	}
	state.Accumulated = acc.Candidates()

	return c.gateAndFinish(ctx, state, gaps, user, topN)
}

// resumeRefined asks the replanner for new angles and searches them on top of
// the existing pool. A stop signal, an empty replan, or a soft failure ends
// the negotiation with the catalog.
func (c *Coordinator) resumeRefined(ctx context.Context, state *types.RetryState, gaps types.SkillGapSet, user types.UserContext, topN int) types.RecommendationResult {
	if c.replanner == nil {
		return c.fallback(gaps, topN)
	}

	result, err := c.replanner.Replan(ctx, state.IssuedQueries, rejectionReason(state), user, gaps)
	if err != nil {
		if types.IsConfiguration(err) {
			return types.Failed(types.KindConfiguration, err.Error())
		}
		return c.fallback(gaps, topN)
	}
	if result.Stop || len(result.Queries) == 0 {
		return c.fallback(gaps, topN)
	}
	c.observePlan(result.Queries)

	acc := NewAccumulator(state.Accumulated)
	if err := c.runSearches(ctx, result.Queries, state, acc); err != nil {
		return types.Failed(types.KindConfiguration, err.Error())
	}
	state.Accumulated = acc.Candidates()

	return c.gateAndFinish(ctx, state, gaps, user, topN)
}

// runSearches dispatches the queries in parallel and merges results into the
// accumulator in plan order, so the merged pool is deterministic regardless
// of response arrival. A transient failure degrades its query to an empty
// contribution; a configuration error aborts the whole plan.
func (c *Coordinator) runSearches(ctx context.Context, queries []types.SearchQuery, state *types.RetryState, acc *Accumulator) error {
	results := make([][]types.Candidate, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			candidates, err := c.source.Search(gctx, q.Text, state.StarThreshold)
			if err != nil {
				if types.IsConfiguration(err) {
					return err
				}
				if c.opts.OnSearchDegraded != nil {
					c.opts.OnSearchDegraded(q.Text, err)
				}
				return nil
			}
			results[i] = candidates
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	issued := make(map[string]bool, len(state.IssuedQueries))
	for _, q := range state.IssuedQueries {
		issued[q] = true
	}
	for i, q := range queries {
		if !issued[q.Text] {
			state.IssuedQueries = append(state.IssuedQueries, q.Text)
			issued[q.Text] = true
		}
		acc.Merge(results[i])
	}
	return nil
}

// gateAndFinish evaluates the pool and picks the exit: rerank on acceptance,
// a decision menu while attempts remain, the catalog once they run out.
func (c *Coordinator) gateAndFinish(ctx context.Context, state *types.RetryState, gaps types.SkillGapSet, user types.UserContext, topN int) types.RecommendationResult {
	if c.opts.OnPool != nil {
		c.opts.OnPool(state.Accumulated, state.StarThreshold)
	}

	verdict := quality.Evaluate(state.Accumulated, state.StarThreshold)
	if verdict.Acceptable {
		if c.opts.OnVerdict != nil {
			c.opts.OnVerdict(verdict, state.Attempt)
		}
		return c.rerankOrFallback(ctx, state.Accumulated, gaps, user, topN)
	}

	state.Attempt++
	if c.opts.OnVerdict != nil {
		c.opts.OnVerdict(verdict, state.Attempt)
	}
	if state.Attempt >= types.MaxAttempts {
		return c.fallback(gaps, topN)
	}

	// The relax option is labeled with the threshold this round was actually
	// gated at, which is already the relaxed one after a relax decision.
	options := decisionOptions(verdict.Reason, state.StarThreshold, c.opts.RelaxedThreshold)
	return types.NeedsDecision(options, verdict.Reason, state)
}

// observePlan reports the queries about to be dispatched.
func (c *Coordinator) observePlan(queries []types.SearchQuery) {
	if c.opts.OnPlan != nil {
		c.opts.OnPlan(&types.SearchPlan{Queries: queries})
	}
}

// rerankOrFallback personalizes the accepted pool. Any soft rerank trouble,
// including an empty selection, lands on the catalog.
func (c *Coordinator) rerankOrFallback(ctx context.Context, pool []types.Candidate, gaps types.SkillGapSet, user types.UserContext, topN int) types.RecommendationResult {
	if c.reranker == nil {
		return c.fallback(gaps, topN)
	}

	items, err := c.reranker.Rerank(ctx, pool, user, gaps, topN)
	if err != nil {
		if types.IsConfiguration(err) {
			return types.Failed(types.KindConfiguration, err.Error())
		}
		return c.fallback(gaps, topN)
	}
	if len(items) == 0 {
		return c.fallback(gaps, topN)
	}
	if len(items) > topN {
		items = items[:topN]
	}
	return types.Success(items)
}

// fallback serves the static catalog. This path cannot fail.
func (c *Coordinator) fallback(gaps types.SkillGapSet, topN int) types.RecommendationResult {
	return types.Success(catalog.Recommend(gaps, topN))
}

// rejectionReason re-derives the gate's reason for the suspended state. The
// gate is pure, so this reproduces exactly the reason the caller saw.
func rejectionReason(state *types.RetryState) string {
	return quality.Evaluate(state.Accumulated, state.StarThreshold).Reason
}
