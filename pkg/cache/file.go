package cache

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// artifactExt marks cached artifact files. Artifact bytes are written
// verbatim, so a cached SVG can be inspected straight from the cache
// directory; the expiry, when a TTL is set, lives in a sidecar file.
const (
	artifactExt = ".art"
	expiryExt   = ".ttl"
)

// FileCache stores rendered artifacts as plain files under a directory,
// typically ~/.cache/pyscan.
type FileCache struct {
	dir string
}

// NewFileCache creates a file cache rooted at dir, creating the
// directory if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get returns the artifact stored under key. Expired entries are
// removed and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.artifactPath(key)

	if c.expired(path) {
		c.removeEntry(path)
		return nil, false, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores an artifact under key. With ttl > 0 the entry expires;
// zero keeps it until deleted or cleared.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	path := c.artifactPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	if ttl <= 0 {
		if err := os.Remove(path + expiryExt); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	stamp := time.Now().Add(ttl).Format(time.RFC3339Nano)
	return os.WriteFile(path+expiryExt, []byte(stamp), 0o644)
}

// Delete removes an artifact and its expiry. Deleting a missing key is
// not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	path := c.artifactPath(key)
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(path + expiryExt); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error {
	return nil
}

// Clear removes every cached entry, returning the number of artifacts
// removed and the bytes freed, sidecars included.
func (c *FileCache) Clear() (int, int64, error) {
	artifacts := 0
	var freed int64

	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			freed += info.Size()
		}
		if err := os.Remove(path); err != nil {
			return nil
		}
		if strings.HasSuffix(path, artifactExt) {
			artifacts++
		}
		return nil
	})
	if err != nil {
		return artifacts, freed, err
	}

	// Drop the now-empty shard directories
	if entries, err := os.ReadDir(c.dir); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				_ = os.Remove(filepath.Join(c.dir, e.Name()))
			}
		}
	}
	return artifacts, freed, nil
}

// expired reports whether the entry's sidecar holds a passed deadline.
// An unreadable or malformed sidecar counts as expired.
func (c *FileCache) expired(path string) bool {
	data, err := os.ReadFile(path + expiryExt)
	if os.IsNotExist(err) {
		return false
	}
	if err != nil {
		return true
	}
	deadline, err := time.Parse(time.RFC3339Nano, string(data))
	if err != nil {
		return true
	}
	return time.Now().After(deadline)
}

func (c *FileCache) removeEntry(path string) {
	_ = os.Remove(path)
	_ = os.Remove(path + expiryExt)
}

// artifactPath maps a cache key to its file. Keys are hashed and
// sharded by the first two hex characters so one plot-heavy project
// doesn't pile thousands of files into a single directory.
func (c *FileCache) artifactPath(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, hash[:2], hash[2:]+artifactExt)
}

var _ Cache = (*FileCache)(nil)
