package store

import (
	"fmt"
	"path/filepath"
)

// JSONCache stores reference documents (parties, deputies, catalogues) as
// <dir>/<name>.json. A present file is never refreshed.
type JSONCache struct {
	dir string
}

func NewJSONCache(dir string) *JSONCache {
	return &JSONCache{dir: dir}
}

func (c *JSONCache) path(name string) string {
	return filepath.Join(c.dir, name+".json")
}

// Load decodes the cached document into dest and reports whether it existed.
func (c *JSONCache) Load(name string, dest any) (bool, error) {
	return readJSON(c.path(name), dest)
}

func (c *JSONCache) Save(name string, v any) error {
	return writeJSON(c.path(name), v)
}

// LoadOrFetch returns the cached list called name. On a miss it calls fetch
// and caches the result. The bool reports a cache hit.
func LoadOrFetch[T any](c *JSONCache, name string, fetch func() ([]T, error)) ([]T, bool, error) {
	var items []T
	found, err := c.Load(name, &items)
	if err != nil {
		return nil, false, fmt.Errorf("read cache %s: %w", name, err)
	}
	if found {
		return items, true, nil
	}

	items, err = fetch()
	if err != nil {
		return nil, false, err
	}
	if err := c.Save(name, items); err != nil {
		return nil, false, fmt.Errorf("write cache %s: %w", name, err)
	}
	return items, false, nil
}
