package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/interview-prep/internal/plan"
	"github.com/jonathan/interview-prep/internal/types"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a study plan from a gap analysis",
	Long:  "Generate a prioritized, time-boxed study plan. Reads a gap analysis from a file produced by the analyze command, or runs the analysis inline from the same flags analyze takes.",
	RunE:  runPlan,
}

var (
	planData           dataFlags
	planGapFile        string
	planWeeks          int
	planMinutesPerWeek int
	planMinutesSkill   int
	planQuestions      int
	planOutputFile     string
)

func init() {
	planCmd.Flags().StringVar(&planGapFile, "gap", "", "Path to analyze output JSON (omit to analyze inline)")
	planCmd.Flags().IntVar(&planWeeks, "weeks", 0, "Plan length in weeks (default 4)")
	planCmd.Flags().IntVar(&planMinutesPerWeek, "minutes-per-week", 0, "Weekly study budget in minutes (default 360)")
	planCmd.Flags().IntVar(&planMinutesSkill, "minutes-per-skill", 0, "Fixed minutes per skill (default: divide budget evenly)")
	planCmd.Flags().IntVar(&planQuestions, "questions-per-skill", 0, "Practice questions attached per skill (default 2)")
	planCmd.Flags().StringVarP(&planOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")

	// Inline analysis reuses the analyze flags.
	planCmd.Flags().StringVarP(&analyzeResumeFile, "resume", "r", "", "Path to resume text file (for inline analysis)")
	planCmd.Flags().StringVar(&analyzeJDFile, "jd", "", "Path to job description text file")
	planCmd.Flags().StringVar(&analyzeJDURL, "jd-url", "", "URL of a job posting to fetch")
	planCmd.Flags().StringVar(&analyzeCompany, "company", "", "Company ID from the company catalog")
	planCmd.Flags().StringVar(&analyzeRole, "role", "", "Role ID within the company")
	planCmd.Flags().IntVar(&analyzeMinCategory, "min-category-skills", 0, "Same-category skills needed for a partial match (default 1)")
	planData.register(planCmd)

	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
	data, err := loadData(planData)
	if err != nil {
		return err
	}

	gapResult, err := loadGapResult(data)
	if err != nil {
		return err
	}

	opts := plan.Options{
		Weeks:             planWeeks,
		MinutesPerWeek:    planMinutesPerWeek,
		MinutesPerSkill:   planMinutesSkill,
		QuestionsPerSkill: planQuestions,
	}
	if opts.Weeks == 0 {
		opts.Weeks = data.cfg.Weeks
	}
	if opts.MinutesPerWeek == 0 {
		opts.MinutesPerWeek = data.cfg.MinutesPerWeek
	}

	studyPlan, err := plan.Generate(gapResult, data.matcher.Taxonomy(), data.bank, opts)
	if err != nil {
		return err
	}

	return writeResult(planOutputFile, studyPlan)
}

// loadGapResult reads the gap from --gap, or runs the analysis inline.
func loadGapResult(data *loadedData) (*types.GapResult, error) {
	if planGapFile == "" {
		if analyzeResumeFile == "" {
			return nil, fmt.Errorf("either --gap or --resume with a target source is required")
		}
		out, err := runAnalysis(context.Background(), data)
		if err != nil {
			return nil, err
		}
		return out.Gap, nil
	}

	content, err := os.ReadFile(planGapFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read gap file: %w", err)
	}

	// Accept both a bare GapResult and the analyze command's output.
	var wrapped analysisOutput
	if err := json.Unmarshal(content, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse gap JSON: %w", err)
	}
	if wrapped.Gap != nil {
		return wrapped.Gap, nil
	}

	var gapResult types.GapResult
	if err := json.Unmarshal(content, &gapResult); err != nil {
		return nil, fmt.Errorf("failed to parse gap JSON: %w", err)
	}
	return &gapResult, nil
}
