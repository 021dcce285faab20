package main

import (
	"fmt"
	"os"

	"github.com/jonathan/interview-prep/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for skill extraction, gap analysis and study plan generation.`,
	RunE:  runServe,
}

var (
	serveData    dataFlags
	servePort    int
	serveVerbose bool
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Log each request")
	serveData.register(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(serveData)
	if err != nil {
		return err
	}

	// Persistence is optional; without DATABASE_URL the /analyses
	// endpoints return 503 and everything else works.
	databaseURL := cfg.DatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}

	srv, err := server.New(server.Config{
		Port:          servePort,
		DatabaseURL:   databaseURL,
		TaxonomyPath:  cfg.Taxonomy,
		CompaniesPath: cfg.Companies,
		QuestionsPath: cfg.Questions,
		Defaults: server.Defaults{
			Weeks:             cfg.Weeks,
			MinutesPerWeek:    cfg.MinutesPerWeek,
			MinCategorySkills: cfg.MinCategorySkills,
		},
		Verbose: serveVerbose || cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
