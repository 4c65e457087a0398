package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// The DDL sticks to types both postgres and sqlite accept.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS proposition_batches (
		sigla            TEXT      NOT NULL,
		year             INTEGER   NOT NULL,
		with_attachments BOOLEAN   NOT NULL,
		payload          TEXT      NOT NULL,
		propositions     INTEGER   NOT NULL DEFAULT 0,
		created_at       TIMESTAMP NOT NULL,
		PRIMARY KEY (sigla, year, with_attachments)
	)`,
	`CREATE TABLE IF NOT EXISTS acquisition_runs (
		id               TEXT      PRIMARY KEY,
		sigla            TEXT      NOT NULL,
		year             INTEGER   NOT NULL,
		with_attachments BOOLEAN   NOT NULL,
		status           TEXT      NOT NULL,
		propositions     INTEGER   NOT NULL DEFAULT 0,
		message          TEXT      NOT NULL DEFAULT '',
		started_at       TIMESTAMP NOT NULL,
		finished_at      TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS acquisition_runs_started_at ON acquisition_runs (started_at)`,
}

// Migrate creates the tables used by SQLStore and RunStore.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
