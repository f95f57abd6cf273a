package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/zeebo/xxh3"
)

// ModelCache stores downloaded model files on disk keyed by a hash of their source
type ModelCache struct {
	dir string
}

// NewModelCache creates a cache rooted at dir; an empty dir disables caching
func NewModelCache(dir string) *ModelCache {
	return &ModelCache{dir: dir}
}

// Enabled reports whether the cache writes to disk
func (c *ModelCache) Enabled() bool {
	return c != nil && c.dir != ""
}

// EnsureDir ensures the cache directory exists, creates it if it doesn't
func (c *ModelCache) EnsureDir() error {
	if !c.Enabled() {
		return nil
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// Path returns the cache file path for a source and version (checksum, may be empty)
func (c *ModelCache) Path(source, version string) string {
	key := xxh3.HashString(source + "\x00" + version)
	return filepath.Join(c.dir, "model_"+strconv.FormatUint(key, 16)+".bin")
}

// Read returns the cached bytes and whether they were found
func (c *ModelCache) Read(source, version string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}
	data, err := os.ReadFile(c.Path(source, version))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Write stores data for a source and version. The file is written atomically
func (c *ModelCache) Write(source, version string, data []byte) error {
	if !c.Enabled() {
		return nil
	}
	if err := c.EnsureDir(); err != nil {
		return err
	}
	path := c.Path(source, version)
	tmp, err := os.CreateTemp(c.dir, ".model-*")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}
