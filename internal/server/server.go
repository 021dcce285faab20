// Package server provides the HTTP REST API for the gap-analysis service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/interview-prep/internal/companies"
	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/extraction"
	"github.com/jonathan/interview-prep/internal/questions"
	"github.com/jonathan/interview-prep/internal/taxonomy"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	db         *db.DB // nil when persistence is disabled
	matcher    *extraction.Matcher
	catalog    *companies.Catalog
	bank       *questions.Bank
	defaults   Defaults
	verbose    bool
}

// Defaults are the plan/gap parameters applied when a request omits them.
type Defaults struct {
	Weeks             int
	MinutesPerWeek    int
	MinCategorySkills int
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string // empty disables the /analyses endpoints

	// Data file overrides; empty means embedded defaults
	TaxonomyPath  string
	CompaniesPath string
	QuestionsPath string

	Defaults Defaults
	Verbose  bool
}

// New creates a new server instance. The taxonomy, company catalog and
// question bank are loaded once here; a load failure is fatal.
func New(cfg Config) (*Server, error) {
	tax, err := loadTaxonomy(cfg.TaxonomyPath)
	if err != nil {
		return nil, err
	}
	catalog, err := loadCatalog(cfg.CompaniesPath)
	if err != nil {
		return nil, err
	}
	bank, err := loadBank(cfg.QuestionsPath)
	if err != nil {
		return nil, err
	}

	s := &Server{
		matcher:  extraction.NewMatcher(tax),
		catalog:  catalog,
		bank:     bank,
		defaults: cfg.Defaults,
		verbose:  cfg.Verbose,
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(context.Background()); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		s.db = database
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	// Core pipeline endpoints (stateless)
	mux.HandleFunc("POST /extract", s.handleExtract)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /plan", s.handlePlan)

	// Static dataset endpoints
	mux.HandleFunc("GET /companies", s.handleListCompanies)
	mux.HandleFunc("GET /companies/{id}", s.handleGetCompany)
	mux.HandleFunc("GET /questions", s.handleListQuestions)

	// Persistence endpoints (require DATABASE_URL)
	mux.HandleFunc("POST /analyses", s.handleCreateAnalysis)
	mux.HandleFunc("GET /analyses", s.handleListAnalyses)
	mux.HandleFunc("GET /analyses/{id}", s.handleGetAnalysis)
	mux.HandleFunc("POST /analyses/{id}/plan", s.handleCreatePlan)
	mux.HandleFunc("GET /analyses/{id}/plan", s.handleGetPlan)

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.db != nil {
		s.db.Close()
	}
	log.Println("Server stopped")
	return nil
}

func loadTaxonomy(path string) (*taxonomy.Taxonomy, error) {
	if path != "" {
		return taxonomy.LoadFile(path)
	}
	return taxonomy.Load()
}

func loadCatalog(path string) (*companies.Catalog, error) {
	if path != "" {
		return companies.LoadFile(path)
	}
	return companies.Load()
}

func loadBank(path string) (*questions.Bank, error) {
	if path != "" {
		return questions.LoadFile(path)
	}
	return questions.Load()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging logs each request with its duration
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		if s.verbose {
			log.Printf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
		}
	})
}

// jsonResponse writes a JSON response with the given status code
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// errorResponse writes a JSON error response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
