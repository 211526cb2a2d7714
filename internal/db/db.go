// Package db provides PostgreSQL storage for candidate profiles and goals.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
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

const schema = `
CREATE TABLE IF NOT EXISTS candidate_profiles (
    user_id             UUID PRIMARY KEY,
    education_level     TEXT NOT NULL DEFAULT '',
    experience_level    TEXT NOT NULL DEFAULT '',
    career_goal         TEXT,
    location_preference TEXT,
    remote_work         BOOLEAN NOT NULL DEFAULT FALSE,
    created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS profile_skills (
    user_id  UUID NOT NULL REFERENCES candidate_profiles(user_id) ON DELETE CASCADE,
    skill    TEXT NOT NULL,
    position INT  NOT NULL,
    PRIMARY KEY (user_id, skill)
);

CREATE TABLE IF NOT EXISTS profile_sectors (
    user_id  UUID NOT NULL REFERENCES candidate_profiles(user_id) ON DELETE CASCADE,
    sector   TEXT NOT NULL,
    position INT  NOT NULL,
    PRIMARY KEY (user_id, sector)
);

CREATE TABLE IF NOT EXISTS career_goals (
    user_id      UUID PRIMARY KEY,
    goal         TEXT NOT NULL,
    description  TEXT,
    requirements JSONB,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates the profile tables when they do not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
