package adapter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "csrules.dev/pkg/csrules/internal/model"
)

// DefaultCacheFile is the cache location used when none is configured.
const DefaultCacheFile = ".csrules.cache"

// CacheStore persists the fix cache between runs.
type CacheStore interface {
	// Load reads the cache at path. A missing file yields an empty cache.
	Load(ctx context.Context, path m.Path) (*m.FixCache, error)

	// Save writes the cache to path, creating parent directories.
	Save(ctx context.Context, path m.Path, cache *m.FixCache) error
}

// YAMLCacheStore stores the cache as a YAML document.
type YAMLCacheStore struct{}

// NewYAMLCacheStore constructs a YAMLCacheStore.
func NewYAMLCacheStore() *YAMLCacheStore {
	return &YAMLCacheStore{}
}

// Load parses the cache file at path.
func (s *YAMLCacheStore) Load(ctx context.Context, path m.Path) (*m.FixCache, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &m.FixCache{Hashes: make(map[m.Path]string)}, nil
		}

		return nil, fmt.Errorf("reading cache file %s: %w", path, err)
	}

	cache := &m.FixCache{}
	if err := yaml.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("parsing cache file %s: %w", path, err)
	}

	if cache.Hashes == nil {
		cache.Hashes = make(map[m.Path]string)
	}

	return cache, nil
}

// Save serializes cache to path.
func (s *YAMLCacheStore) Save(ctx context.Context, path m.Path, cache *m.FixCache) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cache)
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating cache directory: %w", err)
		}
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("writing cache file %s: %w", path, err)
	}

	return nil
}
