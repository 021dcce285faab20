package main

import (
	"fmt"
	"os"

	"github.com/jonathan/interview-prep/internal/types"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract taxonomy skills from a text file",
	Long:  "Extract all taxonomy skills mentioned in a resume or job description text file, ordered by first occurrence.",
	RunE:  runExtract,
}

var (
	extractData       dataFlags
	extractInputFile  string
	extractOutputFile string
	extractAsJD       bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to text file (required)")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	extractCmd.Flags().BoolVar(&extractAsJD, "jd", false, "Treat input as a job description and tag skill importance")
	extractData.register(extractCmd)
	_ = extractCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	data, err := loadData(extractData)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(extractInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var skills *types.ExtractedSkillSet
	if extractAsJD {
		skills = data.matcher.ExtractJD(string(content))
	} else {
		skills = data.matcher.Extract(string(content))
	}

	return writeResult(extractOutputFile, skills)
}
