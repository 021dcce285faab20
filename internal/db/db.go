// Package db provides PostgreSQL storage for gap analyses and study plans.
// Storage is optional: the core pipeline never touches it, only the CLI
// and server persist results on request.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/interview-prep/internal/types"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// AnalysisRecord is a persisted gap analysis.
type AnalysisRecord struct {
	ID        uuid.UUID                `json:"id"`
	Company   string                   `json:"company,omitempty"`
	Role      string                   `json:"role,omitempty"`
	Candidate *types.ExtractedSkillSet `json:"candidate"`
	Target    *types.ExtractedSkillSet `json:"target"`
	Gap       *types.GapResult         `json:"gap"`
	CreatedAt time.Time                `json:"created_at"`
}

// PlanRecord is a persisted study plan tied to an analysis.
type PlanRecord struct {
	ID         uuid.UUID        `json:"id"`
	AnalysisID uuid.UUID        `json:"analysis_id"`
	Plan       *types.StudyPlan `json:"plan"`
	CreatedAt  time.Time        `json:"created_at"`
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping verifies the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// SaveAnalysis stores a gap analysis and returns its ID
func (db *DB) SaveAnalysis(ctx context.Context, rec *AnalysisRecord) (uuid.UUID, error) {
	candidateJSON, err := json.Marshal(rec.Candidate)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal candidate skills: %w", err)
	}
	targetJSON, err := json.Marshal(rec.Target)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal target skills: %w", err)
	}
	gapJSON, err := json.Marshal(rec.Gap)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal gap result: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO gap_analyses (company, role, candidate, target, gap)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		rec.Company, rec.Role, candidateJSON, targetJSON, gapJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return id, nil
}

// GetAnalysis retrieves a stored gap analysis by ID
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*AnalysisRecord, error) {
	var (
		rec           AnalysisRecord
		candidateJSON []byte
		targetJSON    []byte
		gapJSON       []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, company, role, candidate, target, gap, created_at
		 FROM gap_analyses WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.Company, &rec.Role, &candidateJSON, &targetJSON, &gapJSON, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	if err := json.Unmarshal(candidateJSON, &rec.Candidate); err != nil {
		return nil, fmt.Errorf("failed to unmarshal candidate skills: %w", err)
	}
	if err := json.Unmarshal(targetJSON, &rec.Target); err != nil {
		return nil, fmt.Errorf("failed to unmarshal target skills: %w", err)
	}
	if err := json.Unmarshal(gapJSON, &rec.Gap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gap result: %w", err)
	}

	return &rec, nil
}

// ListAnalyses returns the most recent analyses, newest first
func (db *DB) ListAnalyses(ctx context.Context, limit int) ([]*AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, company, role, candidate, target, gap, created_at
		 FROM gap_analyses ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var records []*AnalysisRecord
	for rows.Next() {
		var (
			rec           AnalysisRecord
			candidateJSON []byte
			targetJSON    []byte
			gapJSON       []byte
		)
		if err := rows.Scan(&rec.ID, &rec.Company, &rec.Role, &candidateJSON, &targetJSON, &gapJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		if err := json.Unmarshal(candidateJSON, &rec.Candidate); err != nil {
			return nil, fmt.Errorf("failed to unmarshal candidate skills: %w", err)
		}
		if err := json.Unmarshal(targetJSON, &rec.Target); err != nil {
			return nil, fmt.Errorf("failed to unmarshal target skills: %w", err)
		}
		if err := json.Unmarshal(gapJSON, &rec.Gap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal gap result: %w", err)
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}

// SavePlan stores a study plan for an analysis and returns its ID
func (db *DB) SavePlan(ctx context.Context, analysisID uuid.UUID, plan *types.StudyPlan) (uuid.UUID, error) {
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal plan: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO study_plans (analysis_id, plan)
		 VALUES ($1, $2)
		 RETURNING id`,
		analysisID, planJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save plan: %w", err)
	}
	return id, nil
}

// GetPlan retrieves the latest study plan for an analysis
func (db *DB) GetPlan(ctx context.Context, analysisID uuid.UUID) (*PlanRecord, error) {
	var (
		rec      PlanRecord
		planJSON []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, analysis_id, plan, created_at
		 FROM study_plans WHERE analysis_id = $1
		 ORDER BY created_at DESC LIMIT 1`,
		analysisID,
	).Scan(&rec.ID, &rec.AnalysisID, &planJSON, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	if err := json.Unmarshal(planJSON, &rec.Plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}

	return &rec, nil
}
