package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-prep/internal/companies"
	"github.com/jonathan/interview-prep/internal/config"
	"github.com/jonathan/interview-prep/internal/extraction"
	"github.com/jonathan/interview-prep/internal/questions"
	"github.com/jonathan/interview-prep/internal/taxonomy"
)

// dataFlags are the dataset override flags shared by the subcommands.
type dataFlags struct {
	configPath    string
	taxonomyPath  string
	companiesPath string
	questionsPath string
}

// register adds the shared dataset flags to a command.
func (f *dataFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to JSON config file")
	cmd.Flags().StringVar(&f.taxonomyPath, "taxonomy", "", "Path to skills taxonomy JSON (default: embedded)")
	cmd.Flags().StringVar(&f.companiesPath, "companies", "", "Path to company profiles JSON (default: embedded)")
	cmd.Flags().StringVar(&f.questionsPath, "questions", "", "Path to question bank JSON (default: embedded)")
}

// loadedData bundles the datasets a command works against.
type loadedData struct {
	cfg     config.Config
	matcher *extraction.Matcher
	catalog *companies.Catalog
	bank    *questions.Bank
}

// resolveConfig merges an optional config file with flag overrides.
// Flags win over the file; unset values keep their zero value so the
// embedded defaults apply.
func resolveConfig(f dataFlags) (config.Config, error) {
	cfg := config.Config{
		Taxonomy:  f.taxonomyPath,
		Companies: f.companiesPath,
		Questions: f.questionsPath,
	}

	if f.configPath != "" {
		fileCfg, err := config.LoadConfig(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		if err := fileCfg.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("invalid config file: %w", err)
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}

	return cfg, nil
}

// loadData loads the taxonomy, company catalog and question bank,
// honoring file overrides from the resolved config.
func loadData(f dataFlags) (*loadedData, error) {
	cfg, err := resolveConfig(f)
	if err != nil {
		return nil, err
	}

	var tax *taxonomy.Taxonomy
	if cfg.Taxonomy != "" {
		tax, err = taxonomy.LoadFile(cfg.Taxonomy)
	} else {
		tax, err = taxonomy.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}

	var catalog *companies.Catalog
	if cfg.Companies != "" {
		catalog, err = companies.LoadFile(cfg.Companies)
	} else {
		catalog, err = companies.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load companies: %w", err)
	}

	var bank *questions.Bank
	if cfg.Questions != "" {
		bank, err = questions.LoadFile(cfg.Questions)
	} else {
		bank, err = questions.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	return &loadedData{
		cfg:     cfg,
		matcher: extraction.NewMatcher(tax),
		catalog: catalog,
		bank:    bank,
	}, nil
}

// writeResult marshals a result as indented JSON to a file, or stdout
// when no output path is given.
func writeResult(outputFile string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if outputFile == "" {
		_, err = fmt.Fprintln(os.Stdout, string(jsonBytes))
		return err
	}

	if err := os.WriteFile(outputFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "Output: %s\n", outputFile)
	return nil
}
