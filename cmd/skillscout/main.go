// Package main provides the skillscout CLI: GitHub project recommendations
// for closing skill gaps.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skillscout",
	Short: "Find GitHub projects that close your skill gaps",
	Long:  "skillscout plans GitHub searches around your skill gaps, quality-checks what it finds, and recommends a short list of projects worth building, with a curated catalog as the safety net when live search comes up short.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
