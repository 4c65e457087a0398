package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/farxc/envelopa-camara/internal/camara/types"
)

// FileStore keeps one JSON document per batch in a directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path is the file a batch is stored in.
func (s *FileStore) Path(key types.BatchKey) string {
	return filepath.Join(s.dir, "prop_props_"+key.String()+".json")
}

func (s *FileStore) Exists(_ context.Context, key types.BatchKey) (bool, error) {
	_, err := os.Stat(s.Path(key))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (s *FileStore) Get(_ context.Context, key types.BatchKey) (*types.Batch, error) {
	var batch types.Batch
	found, err := readJSON(s.Path(key), &batch)
	if err != nil {
		return nil, fmt.Errorf("read batch %s: %w", key, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, key)
	}
	return &batch, nil
}

func (s *FileStore) Put(_ context.Context, batch *types.Batch) error {
	if err := writeJSON(s.Path(batch.Key), batch); err != nil {
		return fmt.Errorf("write batch %s: %w", batch.Key, err)
	}
	return nil
}

func readJSON(path string, dest any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// writeJSON replaces path through a temporary file so readers never see a partial document.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
