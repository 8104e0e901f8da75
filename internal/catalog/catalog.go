// Package catalog is the always-available fallback recommender: a small fixed
// list of high-quality projects scored against the user's skill gaps with a
// pure, deterministic function. It is the terminal degrade path and never
// fails.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/skillscout/internal/skills"
	"github.com/jonathan/skillscout/internal/types"
)

// Entry is one fixed catalog project.
type Entry struct {
	Key          string
	URL          string
	StarCount    int
	Tags         []string
	Difficulty   string
	TimeEstimate string
}

// Scoring weights: gap coverage dominates, star count breaks near-ties.
const (
	overlapWeight   = 0.75
	starWeight      = 0.25
	starScaleCeling = 100000
)

// entries is the fixed catalog, in declaration order. Declaration order is
// the final tie-breaker, so ordering here is meaningful.
var entries = []Entry{
	{
		Key:          "langchain-ai/langchain",
		URL:          "https://github.com/langchain-ai/langchain",
		StarCount:    110000,
		Tags:         []string{"python", "langchain", "agent", "rag"},
		Difficulty:   "medium",
		TimeEstimate: "4-6 days",
	},
	{
		Key:          "run-llama/llama_index",
		URL:          "https://github.com/run-llama/llama_index",
		StarCount:    40000,
		Tags:         []string{"python", "llamaindex", "rag", "vector-db"},
		Difficulty:   "medium",
		TimeEstimate: "4-6 days",
	},
	{
		Key:          "microsoft/autogen",
		URL:          "https://github.com/microsoft/autogen",
		StarCount:    45000,
		Tags:         []string{"python", "agent", "autogen", "react"},
		Difficulty:   "medium-hard",
		TimeEstimate: "5-7 days",
	},
	{
		Key:          "langgenius/dify",
		URL:          "https://github.com/langgenius/dify",
		StarCount:    90000,
		Tags:         []string{"agent", "workflow", "rag", "docker"},
		Difficulty:   "hard",
		TimeEstimate: "7-10 days",
	},
	{
		Key:          "fastapi/fastapi",
		URL:          "https://github.com/fastapi/fastapi",
		StarCount:    85000,
		Tags:         []string{"python", "fastapi", "api"},
		Difficulty:   "easy-medium",
		TimeEstimate: "2-4 days",
	},
}

// Entries returns a copy of the catalog in declaration order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Recommend scores the catalog against the gaps and returns the top entries,
// at most topN.
func Recommend(gaps types.SkillGapSet, topN int) []types.RankedItem {
	type scored struct {
		entry   Entry
		order   int
		overlap []string
		score   float64
	}

	ranked := make([]scored, 0, len(entries))
	for i, entry := range entries {
		overlap := skills.Overlap(entry.Tags, gaps)
		starFactor := float64(entry.StarCount) / starScaleCeling
		if starFactor > 1.0 {
			starFactor = 1.0
		}
		ranked = append(ranked, scored{
			entry:   entry,
			order:   i,
			overlap: overlap,
			score:   float64(len(overlap))*overlapWeight + starFactor*starWeight,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if len(ranked[i].overlap) != len(ranked[j].overlap) {
			return len(ranked[i].overlap) > len(ranked[j].overlap)
		}
		if ranked[i].entry.StarCount != ranked[j].entry.StarCount {
			return ranked[i].entry.StarCount > ranked[j].entry.StarCount
		}
		return ranked[i].order < ranked[j].order
	})

	if topN <= 0 || topN > len(ranked) {
		topN = len(ranked)
	}

	items := make([]types.RankedItem, 0, topN)
	for _, r := range ranked[:topN] {
		items = append(items, types.RankedItem{
			Key:          r.entry.Key,
			URL:          r.entry.URL,
			StarCount:    r.entry.StarCount,
			Reason:       reasonFor(r.overlap, gaps),
			Difficulty:   r.entry.Difficulty,
			TimeEstimate: r.entry.TimeEstimate,
		})
	}
	return items
}

// reasonFor personalizes the recommendation reason to the matched gaps.
func reasonFor(overlap []string, gaps types.SkillGapSet) string {
	switch {
	case len(overlap) > 0:
		return fmt.Sprintf("fills skill gaps: %s", strings.Join(overlap, ", "))
	case !gaps.IsEmpty():
		return "related to the target role, a good stretch project"
	default:
		return "aligned with agent/LLM roles, a solid resume project"
	}
}
