package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPostgresPool(databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates and upgrades both progress tables idempotently.
// The legacy table predates review scheduling, so its scheduling columns
// arrive via ADD COLUMN IF NOT EXISTS rather than a fresh CREATE.
func EnsureSchema(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS progress (
			question_id VARCHAR(255) PRIMARY KEY,
			completed BOOLEAN DEFAULT FALSE,
			notes TEXT,
			code TEXT,
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`ALTER TABLE progress ADD COLUMN IF NOT EXISTS completed_at TIMESTAMPTZ`,
		`ALTER TABLE progress ADD COLUMN IF NOT EXISTS last_reviewed TIMESTAMPTZ`,
		`ALTER TABLE progress ADD COLUMN IF NOT EXISTS review_interval INTEGER DEFAULT 0`,
		`ALTER TABLE progress ADD COLUMN IF NOT EXISTS review_count INTEGER DEFAULT 0`,
		`CREATE TABLE IF NOT EXISTS progress_v2 (
			id SERIAL PRIMARY KEY,
			question_id TEXT UNIQUE NOT NULL,
			completed BOOLEAN DEFAULT FALSE,
			notes TEXT,
			code TEXT,
			completed_at TIMESTAMPTZ,
			last_reviewed TIMESTAMPTZ,
			review_interval INTEGER DEFAULT 1,
			review_count INTEGER DEFAULT 0,
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	return nil
}
