package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillscout/internal/config"
	"github.com/jonathan/skillscout/internal/observability"
	"github.com/jonathan/skillscout/internal/skills"
	"github.com/jonathan/skillscout/internal/types"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Continue a suspended search with your decision",
	Long: `Loads the retry state written by 'skillscout recommend --non-interactive' and
continues the search with your decision: refine, relax_threshold, or
use_fallback. The state file is removed once the search finishes.`,
	RunE: runResume,
}

var (
	resumeConfigPath string
	resumeStateFile  string
	resumeDecision   string
	resumeGaps       string
	resumeSkills     string
	resumeExperience string
	resumeTargetRole string
	resumeTopN       int
	resumeVerbose    bool
)

func init() {
	resumeCmd.Flags().StringVarP(&resumeConfigPath, "config", "c", "", "Path to JSON config file")
	resumeCmd.Flags().StringVar(&resumeStateFile, "state-file", "", "Retry state file written by a suspended search (required)")
	resumeCmd.Flags().StringVarP(&resumeDecision, "decision", "d", "", "refine, relax_threshold, or use_fallback (required)")
	resumeCmd.Flags().StringVarP(&resumeGaps, "gaps", "g", "", "Comma-separated skill gaps, same as the original search (required)")
	resumeCmd.Flags().StringVar(&resumeSkills, "skills", "", "Comma-separated known skills, 'name' or 'name:proficiency'")
	resumeCmd.Flags().StringVar(&resumeExperience, "experience", "", "Experience level (junior, mid, senior)")
	resumeCmd.Flags().StringVar(&resumeTargetRole, "target-role", "", "Role you are aiming for")
	resumeCmd.Flags().IntVarP(&resumeTopN, "top-n", "n", 0, "Number of recommendations to return")
	resumeCmd.Flags().BoolVarP(&resumeVerbose, "verbose", "v", false, "Print search plans, pool contents, and gate verdicts")

	for _, flag := range []string{"state-file", "decision", "gaps"} {
		if err := resumeCmd.MarkFlagRequired(flag); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", flag, err))
		}
	}

	rootCmd.AddCommand(resumeCmd)
}

func runResume(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(resumeConfigPath)
	if err != nil {
		return err
	}
	merged := (&config.Config{
		TopN:      resumeTopN,
		StatePath: resumeStateFile,
	}).MergeWithDefaults(*cfg)
	if resumeVerbose || cfg.Verbose {
		merged.Verbose = true
	}

	decision, err := types.ParseDecisionValue(resumeDecision)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(resumeStateFile)
	if err != nil {
		return fmt.Errorf("failed to read state file: %w", err)
	}
	state, err := types.UnmarshalState(data)
	if err != nil {
		return err
	}

	gaps := skills.NewGapSet(parseGaps(resumeGaps))
	user := types.UserContext{
		ExperienceLevel: resumeExperience,
		KnownSkills:     parseSkills(resumeSkills),
		TargetRole:      resumeTargetRole,
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

	result := eng.coordinator.Resume(ctx, decision, state, gaps, user, merged.TopN)

	if result.Status == types.StatusNeedsDecision {
		// Still suspended: overwrite the state file with the new round.
		return saveSuspended(result, resumeStateFile)
	}

	// Terminal result: the suspended round is finished.
	if err := os.Remove(resumeStateFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: failed to remove state file: %v\n", err)
	}

	return finishResult(result, printer)
}
