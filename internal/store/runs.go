package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	StatusSuccess = "success"
	StatusSkipped = "skipped"
	StatusFailure = "failure"
)

// AcquisitionRun records the outcome of one (sigla, year, attachments) acquisition.
type AcquisitionRun struct {
	ID              string    `db:"id" json:"id"`
	Sigla           string    `db:"sigla" json:"sigla"`
	Year            int       `db:"year" json:"year"`
	WithAttachments bool      `db:"with_attachments" json:"with_attachments"`
	Status          string    `db:"status" json:"status"`
	Propositions    int       `db:"propositions" json:"propositions"`
	Message         string    `db:"message" json:"message,omitempty"`
	StartedAt       time.Time `db:"started_at" json:"started_at"`
	FinishedAt      time.Time `db:"finished_at" json:"finished_at"`
}

type RunStore struct {
	db *sqlx.DB
}

// InsertRun assigns an id when the run has none.
func (rs *RunStore) InsertRun(ctx context.Context, run *AcquisitionRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	run.StartedAt = run.StartedAt.UTC()
	run.FinishedAt = run.FinishedAt.UTC()

	query := `INSERT INTO acquisition_runs (
		id,
		sigla,
		year,
		with_attachments,
		status,
		propositions,
		message,
		started_at,
		finished_at
	) VALUES (
		:id,
		:sigla,
		:year,
		:with_attachments,
		:status,
		:propositions,
		:message,
		:started_at,
		:finished_at
	)`

	_, err := rs.db.NamedExecContext(ctx, query, run)
	return err
}

// GetLatest returns the most recent runs first.
func (rs *RunStore) GetLatest(ctx context.Context, limit int) ([]AcquisitionRun, error) {
	query := rs.db.Rebind(`SELECT id, sigla, year, with_attachments, status, propositions, message, started_at, finished_at
		FROM acquisition_runs
		ORDER BY started_at DESC
		LIMIT ?`)

	runs := []AcquisitionRun{}
	if err := rs.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, err
	}
	return runs, nil
}
