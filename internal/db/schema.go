package db

import (
	"context"
	"fmt"
)

// schema is applied idempotently at startup. Deleting a job cascades to its
// applications; a candidate may hold at most one application per job.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	role          TEXT NOT NULL DEFAULT 'user',
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS jobs (
	id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	title           TEXT NOT NULL,
	company         TEXT NOT NULL,
	location        TEXT NOT NULL,
	category        TEXT NOT NULL,
	job_type        TEXT NOT NULL,
	description     TEXT NOT NULL,
	requirements    TEXT[] NOT NULL DEFAULT '{}',
	salary_min      INTEGER,
	salary_max      INTEGER,
	salary_currency TEXT,
	tags            TEXT[] NOT NULL DEFAULT '{}',
	logo_url        TEXT,
	is_featured     BOOLEAN NOT NULL DEFAULT FALSE,
	views           INTEGER NOT NULL DEFAULT 0,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS applications (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	job_id        UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL,
	phone         TEXT,
	resume_link   TEXT NOT NULL,
	linkedin_url  TEXT,
	portfolio_url TEXT,
	cover_note    TEXT,
	status        TEXT NOT NULL DEFAULT 'pending',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (job_id, email)
);

CREATE INDEX IF NOT EXISTS idx_jobs_category   ON jobs (category);
CREATE INDEX IF NOT EXISTS idx_jobs_featured   ON jobs (is_featured) WHERE is_featured;
CREATE INDEX IF NOT EXISTS idx_jobs_created    ON jobs (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_apps_status     ON applications (status);
CREATE INDEX IF NOT EXISTS idx_apps_email      ON applications (email);
CREATE INDEX IF NOT EXISTS idx_apps_created    ON applications (created_at DESC);
`

// EnsureSchema creates the tables and indexes if they do not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
