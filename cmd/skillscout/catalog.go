package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillscout/internal/catalog"
	"github.com/jonathan/skillscout/internal/observability"
	"github.com/jonathan/skillscout/internal/skills"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the built-in project catalog, scored against your gaps",
	Long:  "Scores the curated fallback catalog against your skill gaps and prints the best matches. Works fully offline; no API keys needed.",
	RunE:  runCatalog,
}

var (
	catalogGaps string
	catalogTopN int
)

func init() {
	catalogCmd.Flags().StringVarP(&catalogGaps, "gaps", "g", "", "Comma-separated skill gaps to score against")
	catalogCmd.Flags().IntVarP(&catalogTopN, "top-n", "n", 0, "Number of entries to show (0 = all)")

	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(_ *cobra.Command, _ []string) error {
	gaps := skills.NewGapSet(parseGaps(catalogGaps))

	topN := catalogTopN
	if topN <= 0 {
		topN = len(catalog.Entries())
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintRecommendations(catalog.Recommend(gaps, topN))
	return nil
}
