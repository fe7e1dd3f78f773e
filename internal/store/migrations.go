package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema uses IF NOT EXISTS so Migrate can run on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS schedule_runs (
		id          TEXT PRIMARY KEY,
		status      TEXT NOT NULL,
		days        INTEGER NOT NULL,
		coverage    REAL NOT NULL DEFAULT 0,
		scheduled   INTEGER NOT NULL DEFAULT 0,
		unscheduled INTEGER NOT NULL DEFAULT 0,
		report      TEXT NOT NULL DEFAULT '',
		data        TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_schedule_runs_created_at ON schedule_runs(created_at)`,
}

func migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
