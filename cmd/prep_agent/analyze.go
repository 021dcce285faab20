package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/gap"
	"github.com/jonathan/interview-prep/internal/ingestion"
	"github.com/jonathan/interview-prep/internal/types"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute the skill gap between a resume and a target",
	Long:  "Extract skills from a resume and a target (job description text or URL, or a company role profile), then partition the target skills into matched, missing and partial.",
	RunE:  runAnalyze,
}

var (
	analyzeData        dataFlags
	analyzeResumeFile  string
	analyzeJDFile      string
	analyzeJDURL       string
	analyzeCompany     string
	analyzeRole        string
	analyzeMinCategory int
	analyzeOutputFile  string
	analyzeSave        bool
	analyzeDatabaseURL string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResumeFile, "resume", "r", "", "Path to resume text file (required)")
	analyzeCmd.Flags().StringVar(&analyzeJDFile, "jd", "", "Path to job description text file")
	analyzeCmd.Flags().StringVar(&analyzeJDURL, "jd-url", "", "URL of a job posting to fetch")
	analyzeCmd.Flags().StringVar(&analyzeCompany, "company", "", "Company ID from the company catalog")
	analyzeCmd.Flags().StringVar(&analyzeRole, "role", "", "Role ID within the company (required with --company)")
	analyzeCmd.Flags().IntVar(&analyzeMinCategory, "min-category-skills", 0, "Same-category skills needed for a partial match (default 1)")
	analyzeCmd.Flags().StringVarP(&analyzeOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Persist the analysis to the database")
	analyzeCmd.Flags().StringVar(&analyzeDatabaseURL, "db-url", "", "Database URL (default: DATABASE_URL env var)")
	analyzeData.register(analyzeCmd)
	_ = analyzeCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(analyzeCmd)
}

// analysisOutput is the CLI analyze result shape.
type analysisOutput struct {
	Candidate *types.ExtractedSkillSet `json:"candidate"`
	Target    *types.ExtractedSkillSet `json:"target"`
	Gap       *types.GapResult         `json:"gap"`
	Extra     []types.GapSkill         `json:"extra"`
	ID        string                   `json:"id,omitempty"`
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	data, err := loadData(analyzeData)
	if err != nil {
		return err
	}

	ctx := context.Background()

	out, err := runAnalysis(ctx, data)
	if err != nil {
		return err
	}

	if analyzeSave {
		id, err := saveAnalysis(ctx, out)
		if err != nil {
			return err
		}
		out.ID = id
	}

	return writeResult(analyzeOutputFile, out)
}

// runAnalysis executes the extract-and-analyze pipeline for the CLI flags.
func runAnalysis(ctx context.Context, data *loadedData) (*analysisOutput, error) {
	resumeContent, err := os.ReadFile(analyzeResumeFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}

	target, err := resolveTargetSkills(ctx, data)
	if err != nil {
		return nil, err
	}

	candidate := data.matcher.Extract(string(resumeContent))

	minCategory := analyzeMinCategory
	if minCategory == 0 {
		minCategory = data.cfg.MinCategorySkills
	}
	policy := gap.Policy{MinCategorySkills: minCategory}

	return &analysisOutput{
		Candidate: candidate,
		Target:    target,
		Gap:       gap.Analyze(candidate, target, policy),
		Extra:     gap.Extra(candidate, target),
	}, nil
}

// resolveTargetSkills builds the target skill set from --jd, --jd-url
// or --company/--role. Exactly one source must be given.
func resolveTargetSkills(ctx context.Context, data *loadedData) (*types.ExtractedSkillSet, error) {
	sources := 0
	for _, set := range []bool{analyzeJDFile != "", analyzeJDURL != "", analyzeCompany != ""} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return nil, fmt.Errorf("exactly one of --jd, --jd-url or --company is required")
	}

	switch {
	case analyzeJDFile != "":
		jdContent, err := os.ReadFile(analyzeJDFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read job description file: %w", err)
		}
		return data.matcher.ExtractJD(string(jdContent)), nil

	case analyzeJDURL != "":
		fetchCtx, cancel := context.WithTimeout(ctx, ingestion.DefaultTimeout)
		defer cancel()
		text, err := ingestion.FromURL(fetchCtx, analyzeJDURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch job posting: %w", err)
		}
		return data.matcher.ExtractJD(text), nil

	default:
		if analyzeRole == "" {
			return nil, fmt.Errorf("--role is required with --company")
		}
		return data.catalog.TargetSkills(analyzeCompany, analyzeRole, data.matcher)
	}
}

// saveAnalysis persists the analysis and returns the new record ID.
func saveAnalysis(ctx context.Context, out *analysisOutput) (string, error) {
	databaseURL := analyzeDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return "", fmt.Errorf("--save requires a database URL (set DATABASE_URL or use --db-url)")
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	database, err := db.Connect(connCtx, databaseURL)
	if err != nil {
		return "", err
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return "", fmt.Errorf("failed to migrate database: %w", err)
	}

	id, err := database.SaveAnalysis(ctx, &db.AnalysisRecord{
		Company:   analyzeCompany,
		Role:      analyzeRole,
		Candidate: out.Candidate,
		Target:    out.Target,
		Gap:       out.Gap,
	})
	if err != nil {
		return "", fmt.Errorf("failed to save analysis: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stderr, "Saved analysis %s\n", id)
	return id.String(), nil
}
