package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"phpfix/internal/project"
)

// Current schema version - increment when cachePayload format changes
const cacheSchemaVersion uint16 = 1

// Cache remembers files known to be clean for one rule signature.
// Thread-safe for concurrent access.
type Cache struct {
	mu        sync.RWMutex
	path      string
	signature project.Digest
	clean     map[string]project.Digest
	dirty     bool
}

type cachePayload struct {
	// Schema version for safe invalidation when format changes
	Schema    uint16
	Signature project.Digest
	// Clean maps a file path to the hash of its known clean content.
	Clean map[string]project.Digest
}

// NewCache returns an empty cache that Save writes to path.
func NewCache(path string, signature project.Digest) *Cache {
	return &Cache{path: path, signature: signature, clean: make(map[string]project.Digest)}
}

// OpenCache loads the cache file at path. A missing file, an old schema or a
// different signature yields an empty cache; a broken file is an error.
func OpenCache(path string, signature project.Digest) (*Cache, error) {
	c := NewCache(path, signature)

	// #nosec G304 -- path comes from the project configuration
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: corrupt cache: %w", path, err)
	}
	if payload.Schema != cacheSchemaVersion || payload.Signature != signature {
		c.dirty = true
		return c, nil
	}
	for k, v := range payload.Clean {
		c.clean[k] = v
	}
	return c, nil
}

func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(path)
}

// IsClean reports whether content with hash was recorded clean for path.
func (c *Cache) IsClean(path string, hash project.Digest) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.clean[cacheKey(path)]
	return ok && h == hash
}

// MarkClean records hash as the clean content of path.
func (c *Cache) MarkClean(path string, hash project.Digest) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey(path)
	if h, ok := c.clean[key]; ok && h == hash {
		return
	}
	c.clean[key] = hash
	c.dirty = true
}

// Forget drops path from the cache.
func (c *Cache) Forget(path string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey(path)
	if _, ok := c.clean[key]; ok {
		delete(c.clean, key)
		c.dirty = true
	}
}

// Len returns the number of clean entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.clean)
}

// Save writes the cache back if it changed.
func (c *Cache) Save() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}

	data, err := msgpack.Marshal(&cachePayload{
		Schema:    cacheSchemaVersion,
		Signature: c.signature,
		Clean:     c.clean,
	})
	if err != nil {
		return err
	}
	if err := writeFileAtomic(c.path, data, 0o644); err != nil {
		return err
	}
	c.dirty = false
	return nil
}
