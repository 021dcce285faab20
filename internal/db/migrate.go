package db

import (
	"context"
	"fmt"
)

// schema holds the DDL for the two tables this service owns. Applied
// idempotently at startup.
const schema = `
CREATE TABLE IF NOT EXISTS gap_analyses (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	company    TEXT NOT NULL DEFAULT '',
	role       TEXT NOT NULL DEFAULT '',
	candidate  JSONB NOT NULL,
	target     JSONB NOT NULL,
	gap        JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS study_plans (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	analysis_id UUID NOT NULL REFERENCES gap_analyses(id) ON DELETE CASCADE,
	plan        JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_study_plans_analysis_id ON study_plans(analysis_id);
`

// Migrate creates the storage tables if they do not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
