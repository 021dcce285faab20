// Package main provides the entry point for the interview prep gap-analysis CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prep_agent",
	Short: "ML interview gap analysis",
	Long:  "prep_agent extracts skills from resumes and job descriptions, computes the gap between them, and generates a prioritized, time-boxed study plan.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
