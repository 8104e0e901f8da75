// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skillscout/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSearchPlan outputs the queries the planner decided to run.
func (p *Printer) PrintSearchPlan(plan *types.SearchPlan) {
	if plan == nil {
		return
	}

	if plan.Skip {
		reason := plan.SkipReason
		if reason == "" {
			reason = "no search needed"
		}
		p.printBox("SEARCH PLAN", fmt.Sprintf("Skipped: %s", reason))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Planned %d queries:\n\n", len(plan.Queries)))

	count := min(len(plan.Queries), maxItemsToShow)
	for i := 0; i < count; i++ {
		q := plan.Queries[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", q.Priority, q.Text))
		if q.Rationale != "" {
			rationale := q.Rationale
			if len(rationale) > 50 {
				rationale = rationale[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("    %s\n", rationale))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SEARCH PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPool outputs the accumulated candidate pool after a search round.
func (p *Printer) PrintPool(candidates []types.Candidate, starThreshold int) {
	if len(candidates) == 0 {
		p.printBox("CANDIDATE POOL", "No candidates accumulated")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Accumulated %d candidates (bar: %d stars):\n\n", len(candidates), starThreshold))

	count := min(len(candidates), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := candidates[i]
		sb.WriteString(fmt.Sprintf("• %s\n", c.Key))
		sb.WriteString(fmt.Sprintf("  ★ %d", c.StarCount))
		if c.OriginQuery != "" {
			origin := c.OriginQuery
			if len(origin) > 35 {
				origin = origin[:32] + "..."
			}
			sb.WriteString(fmt.Sprintf("  via %q", origin))
		}
		sb.WriteString("\n")
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(candidates) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(candidates)-maxItemsToShow))
	}

	p.printBox("CANDIDATE POOL", sb.String())
}

// PrintVerdict outputs the quality gate's verdict on the pool.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintVerdict(verdict types.QualityVerdict, attempt int) {
	if verdict.Acceptable {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ POOL ACCEPTED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⚠ Rejected on attempt %d of %d\n", attempt, types.MaxAttempts))
	sb.WriteString(fmt.Sprintf("  %s", verdict.Reason))

	p.printBox("QUALITY GATE", sb.String())
}

// PrintDecisionMenu outputs the recovery options offered to the caller.
func (p *Printer) PrintDecisionMenu(reason string, options []types.DecisionOption) {
	var sb strings.Builder
	if reason != "" {
		r := reason
		if len(r) > 50 {
			r = r[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("Why: %s\n\n", r))
	}

	for i, opt := range options {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, opt.Label))
		if opt.Description != "" {
			desc := opt.Description
			if len(desc) > 50 {
				desc = desc[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("   %s\n", desc))
		}
	}

	p.printBox("YOUR CALL", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the final ranked project list.
func (p *Printer) PrintRecommendations(items []types.RankedItem) {
	if len(items) == 0 {
		return
	}

	var sb strings.Builder
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, item.Key))
		sb.WriteString(fmt.Sprintf("    ★ %d", item.StarCount))
		if item.Difficulty != "" {
			sb.WriteString(fmt.Sprintf("  %s", item.Difficulty))
		}
		if item.TimeEstimate != "" {
			sb.WriteString(fmt.Sprintf("  ~%s", item.TimeEstimate))
		}
		sb.WriteString("\n")
		if item.Reason != "" {
			reason := item.Reason
			if len(reason) > 50 {
				reason = reason[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("    %s\n", reason))
		}
		if i < len(items)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RECOMMENDED PROJECTS", sb.String())
}

// PrintRetryState outputs a compact summary of a suspended negotiation.
func (p *Printer) PrintRetryState(state *types.RetryState) {
	if state == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:        %s\n", state.ID))
	sb.WriteString(fmt.Sprintf("Attempt:   %d of %d\n", state.Attempt, types.MaxAttempts))
	sb.WriteString(fmt.Sprintf("Star bar:  %d\n", state.StarThreshold))
	sb.WriteString(fmt.Sprintf("Pool size: %d\n", len(state.Accumulated)))

	if len(state.IssuedQueries) > 0 {
		sb.WriteString("\nIssued queries:\n")
		count := min(len(state.IssuedQueries), 3)
		for i := 0; i < count; i++ {
			q := state.IssuedQueries[i]
			if len(q) > 50 {
				q = q[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", q))
		}
		if len(state.IssuedQueries) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(state.IssuedQueries)-3))
		}
	}

	p.printBox("SUSPENDED SEARCH", strings.TrimSuffix(sb.String(), "\n"))
}
