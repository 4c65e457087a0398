package store

import (
	"context"
	"errors"

	"github.com/farxc/envelopa-camara/internal/camara/types"
	"github.com/jmoiron/sqlx"
)

var ErrBatchNotFound = errors.New("batch not found")

// BatchStore persists whole batches. Put replaces any batch under the same key.
type BatchStore interface {
	Exists(ctx context.Context, key types.BatchKey) (bool, error)
	Get(ctx context.Context, key types.BatchKey) (*types.Batch, error)
	Put(ctx context.Context, batch *types.Batch) error
}

type RunHistory interface {
	InsertRun(ctx context.Context, run *AcquisitionRun) error
	GetLatest(ctx context.Context, limit int) ([]AcquisitionRun, error)
}

type Storage struct {
	Batches BatchStore
	// Runs is nil when the backend keeps no history.
	Runs RunHistory
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		Batches: &SQLStore{db: db},
		Runs:    &RunStore{db: db},
	}
}

func NewFileStorage(dir string) *Storage {
	return &Storage{
		Batches: NewFileStore(dir),
	}
}
