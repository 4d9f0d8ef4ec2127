package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Get] when a cached entry exists but has
// exceeded its time-to-live (TTL).
//
// The entry is still on disk but stale. Callers should fetch the document
// again and store it with [Cache.Set]. Use errors.Is to check for it:
//
//	ok, err := cache.Get(url, &doc)
//	if errors.Is(err, httputil.ErrExpired) {
//	    // fetch again and refresh the entry
//	}
var ErrExpired = errors.New("cache entry expired")

// Cache provides file-based caching of JSON-marshalable values.
//
// Each entry is a JSON file in the cache directory named by the SHA-256 of
// its key, so URLs with query strings or slashes map to safe file names.
//
// Cache operations are not goroutine-safe; callers sharing one Cache must
// synchronize. Several Cache instances, even in different processes, may
// share a directory.
//
// Freshness is judged by file modification time. A TTL of 0 means entries
// never expire. Use [Cache.Namespace] for scoped views with prefixed keys:
//
//	docs := cache.Namespace("doc:")
//	docs.Set(url, doc) // key becomes "doc:" + url
type Cache struct {
	dir    string
	ttl    time.Duration
	prefix string
}

// NewCache creates a Cache that stores entries in dir with the given TTL.
//
// If dir is empty, NewCache uses ~/.cache/stackchart/http. The directory is
// created with mode 0755 if it doesn't exist; NewCache returns an error if
// that fails (e.g. due to permissions) or the home directory is unknown.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".cache", "stackchart", "http")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Dir returns the directory the entries are stored in.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the time-to-live of entries. Zero means no expiry.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get unmarshals the entry for key into v. It returns (false, nil) on a
// miss and (false, ErrExpired) for a stale entry.
func (c *Cache) Get(key string, v any) (bool, error) {
	path := c.keyPath(key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return false, ErrExpired
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

// Set stores v under key, refreshing its age.
func (c *Cache) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(key), data, 0o644)
}

// Namespace returns a view of c whose keys are prefixed with prefix.
func (c *Cache) Namespace(prefix string) *Cache {
	return &Cache{dir: c.dir, ttl: c.ttl, prefix: c.prefix + prefix}
}

func (c *Cache) keyPath(key string) string {
	h := sha256.Sum256([]byte(c.prefix + key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:]))
}
