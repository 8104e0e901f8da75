package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jonathan/skillscout/internal/config"
	"github.com/jonathan/skillscout/internal/observability"
	"github.com/jonathan/skillscout/internal/skills"
	"github.com/jonathan/skillscout/internal/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Search GitHub for projects that close your skill gaps",
	Long: `Plans GitHub searches around your skill gaps, filters the results through a
quality gate, and recommends the best projects to build. When live results are
not good enough you choose how to proceed: refine the search, relax the star
requirement, or take the curated catalog.

In non-interactive mode a rejected search writes its state to --state-file and
exits; continue it later with 'skillscout resume'.`,
	RunE: runRecommend,
}

var (
	recommendConfigPath     string
	recommendGaps           string
	recommendSkills         string
	recommendExperience     string
	recommendTargetRole     string
	recommendTopN           int
	recommendStateFile      string
	recommendNonInteractive bool
	recommendVerbose        bool
)

func init() {
	recommendCmd.Flags().StringVarP(&recommendConfigPath, "config", "c", "", "Path to JSON config file")
	recommendCmd.Flags().StringVarP(&recommendGaps, "gaps", "g", "", "Comma-separated skill gaps, e.g. 'rag,vector-db' (required)")
	recommendCmd.Flags().StringVar(&recommendSkills, "skills", "", "Comma-separated known skills, 'name' or 'name:proficiency'")
	recommendCmd.Flags().StringVar(&recommendExperience, "experience", "", "Experience level (junior, mid, senior)")
	recommendCmd.Flags().StringVar(&recommendTargetRole, "target-role", "", "Role you are aiming for")
	recommendCmd.Flags().IntVarP(&recommendTopN, "top-n", "n", 0, "Number of recommendations to return")
	recommendCmd.Flags().StringVar(&recommendStateFile, "state-file", "", "Where to save retry state when a decision is needed")
	recommendCmd.Flags().BoolVar(&recommendNonInteractive, "non-interactive", false, "Never prompt; save state and exit when a decision is needed")
	recommendCmd.Flags().BoolVarP(&recommendVerbose, "verbose", "v", false, "Print search plans, pool contents, and gate verdicts")

	if err := recommendCmd.MarkFlagRequired("gaps"); err != nil {
		panic(fmt.Sprintf("failed to mark gaps flag as required: %v", err))
	}

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(recommendConfigPath)
	if err != nil {
		return err
	}
	merged := (&config.Config{
		TopN:      recommendTopN,
		StatePath: recommendStateFile,
	}).MergeWithDefaults(*cfg)
	if recommendVerbose || cfg.Verbose {
		merged.Verbose = true
	}

	gaps := skills.NewGapSet(parseGaps(recommendGaps))
	if gaps.IsEmpty() {
		return fmt.Errorf("no usable skill gaps in %q", recommendGaps)
	}

	user := types.UserContext{
		ExperienceLevel: recommendExperience,
		KnownSkills:     parseSkills(recommendSkills),
		TargetRole:      recommendTargetRole,
	}

	ctx := context.Background()
	printer := observability.NewPrinter(os.Stdout)

	var verbosePrinter *observability.Printer
	if merged.Verbose {
		verbosePrinter = printer
	}

	eng, err := buildEngine(ctx, merged, verbosePrinter)
	if err != nil {
		return err
	}
	defer eng.close()

	result := eng.coordinator.Recommend(ctx, gaps, user, merged.TopN)

	for result.Status == types.StatusNeedsDecision {
		if merged.Verbose {
			printer.PrintRetryState(result.State)
		}

		if recommendNonInteractive {
			return saveSuspended(result, merged.StatePath)
		}

		decision, err := promptDecision(os.Stdin, os.Stdout, result.Reason, result.Options)
		if err != nil {
			return err
		}
		result = eng.coordinator.Resume(ctx, decision, result.State, gaps, user, merged.TopN)
	}

	return finishResult(result, printer)
}

// finishResult renders a terminal (success or failed) result.
func finishResult(result types.RecommendationResult, printer *observability.Printer) error {
	switch result.Status {
	case types.StatusSuccess:
		color.New(color.FgGreen, color.Bold).Printf("✓ %d project(s) recommended\n\n", len(result.Items))
		printer.PrintRecommendations(result.Items)
		return nil
	case types.StatusFailed:
		return fmt.Errorf("%s: %s", result.Kind, result.Message)
	default:
		return fmt.Errorf("unexpected result status %q", result.Status)
	}
}

// saveSuspended persists the retry state for a later 'skillscout resume'.
func saveSuspended(result types.RecommendationResult, statePath string) error {
	if statePath == "" {
		return fmt.Errorf("search needs a decision (%s) but no --state-file was given", result.Reason)
	}

	data, err := types.MarshalState(result.State)
	if err != nil {
		return fmt.Errorf("failed to serialize retry state: %w", err)
	}
	if err := os.WriteFile(statePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	color.New(color.FgYellow, color.Bold).Println("⏸ Search suspended")
	fmt.Printf("Reason: %s\n\n", result.Reason)
	for _, opt := range result.Options {
		fmt.Printf("  skillscout resume --state-file %s --decision %s   # %s\n", statePath, opt.Value, opt.Label)
	}
	return nil
}

// promptDecision shows the decision menu and reads a choice. Both the menu
// number and the decision value are accepted.
func promptDecision(in io.Reader, out io.Writer, reason string, options []types.DecisionOption) (types.DecisionValue, error) {
	color.New(color.FgYellow, color.Bold).Fprintln(out, "⚠ The results are not good enough yet")
	observability.NewPrinter(out).PrintDecisionMenu(reason, options)
	fmt.Fprintf(out, "\nYour choice [1-%d]: ", len(options))

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read decision: %w", err)
		}
		return "", fmt.Errorf("no decision entered")
	}

	return matchDecision(scanner.Text(), options)
}

// matchDecision resolves user input against the offered options, accepting
// either the 1-based menu number or the decision value itself.
func matchDecision(input string, options []types.DecisionOption) (types.DecisionValue, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("no decision entered")
	}

	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(options) {
			return "", fmt.Errorf("choice %d is out of range (1-%d)", n, len(options))
		}
		return options[n-1].Value, nil
	}

	value, err := types.ParseDecisionValue(input)
	if err != nil {
		return "", err
	}
	for _, opt := range options {
		if opt.Value == value {
			return value, nil
		}
	}
	return "", fmt.Errorf("decision %q is not on the menu", value)
}
