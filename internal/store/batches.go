package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/farxc/envelopa-camara/internal/camara/types"
	"github.com/jmoiron/sqlx"
)

// SQLStore keeps batches as JSON payloads in proposition_batches.
type SQLStore struct {
	db *sqlx.DB
}

type batchRow struct {
	Sigla           string    `db:"sigla"`
	Year            int       `db:"year"`
	WithAttachments bool      `db:"with_attachments"`
	Payload         string    `db:"payload"`
	Propositions    int       `db:"propositions"`
	CreatedAt       time.Time `db:"created_at"`
}

func (s *SQLStore) Exists(ctx context.Context, key types.BatchKey) (bool, error) {
	query := s.db.Rebind(`SELECT COUNT(*) FROM proposition_batches
		WHERE sigla = ? AND year = ? AND with_attachments = ?`)

	var count int
	if err := s.db.GetContext(ctx, &count, query, key.Sigla, key.Year, key.WithAttachments); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *SQLStore) Get(ctx context.Context, key types.BatchKey) (*types.Batch, error) {
	query := s.db.Rebind(`SELECT sigla, year, with_attachments, payload, propositions, created_at
		FROM proposition_batches
		WHERE sigla = ? AND year = ? AND with_attachments = ?`)

	var row batchRow
	err := s.db.GetContext(ctx, &row, query, key.Sigla, key.Year, key.WithAttachments)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, key)
	}
	if err != nil {
		return nil, err
	}

	var batch types.Batch
	if err := json.Unmarshal([]byte(row.Payload), &batch); err != nil {
		return nil, fmt.Errorf("decode batch %s: %w", key, err)
	}
	return &batch, nil
}

func (s *SQLStore) Put(ctx context.Context, batch *types.Batch) error {
	payload, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("encode batch %s: %w", batch.Key, err)
	}

	row := batchRow{
		Sigla:           batch.Key.Sigla,
		Year:            batch.Key.Year,
		WithAttachments: batch.Key.WithAttachments,
		Payload:         string(payload),
		Propositions:    len(batch.Propositions),
		CreatedAt:       batch.CreatedAt.UTC(),
	}

	query := `INSERT INTO proposition_batches (
		sigla,
		year,
		with_attachments,
		payload,
		propositions,
		created_at
	) VALUES (
		:sigla,
		:year,
		:with_attachments,
		:payload,
		:propositions,
		:created_at
	) ON CONFLICT (sigla, year, with_attachments) DO UPDATE SET
		payload = excluded.payload,
		propositions = excluded.propositions,
		created_at = excluded.created_at`

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("upsert batch %s: %w", batch.Key, err)
	}
	return tx.Commit()
}
