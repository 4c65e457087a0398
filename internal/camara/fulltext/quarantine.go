package fulltext

import (
	"fmt"
	"os"
	"path/filepath"
)

// Quarantine keeps documents that could not be extracted.
type Quarantine interface {
	Put(propositionID int64, data []byte) (string, error)
}

// DirQuarantine writes <dir>/inteiro_teor_<id>.bin, replacing any earlier copy.
type DirQuarantine struct {
	Dir string
}

func (q DirQuarantine) Path(propositionID int64) string {
	return filepath.Join(q.Dir, fmt.Sprintf("inteiro_teor_%d.bin", propositionID))
}

func (q DirQuarantine) Put(propositionID int64, data []byte) (string, error) {
	if err := os.MkdirAll(q.Dir, 0o755); err != nil {
		return "", err
	}
	path := q.Path(propositionID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
