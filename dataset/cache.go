package dataset

import (
	"crypto/sha256"
	"sync"
)

// ============================================================================
// CACHE — Content-Addressed Load Memoization
// ============================================================================
// Repeated UI interactions re-run the whole pipeline against the same upload,
// so the loader result is memoized by exact input identity (content hash +
// filename). Entries are returned as deep clones — the cleaning pipeline
// mutates its working copy, never the cached decode.
// ============================================================================

type cacheKey struct {
	sum      [32]byte
	filename string
}

// Cache memoizes Load results keyed by input bytes and filename.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]*Table
}

// NewCache creates an empty load cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]*Table)}
}

// Load returns the decoded table for the given upload, decoding at most once
// per distinct input. The returned table is always a private clone.
func (c *Cache) Load(data []byte, filename string) (*Table, error) {
	key := cacheKey{sum: sha256.Sum256(data), filename: filename}

	c.mu.Lock()
	cached, ok := c.entries[key]
	c.mu.Unlock()
	if ok {
		return cached.Clone(), nil
	}

	table, err := Load(data, filename)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = table
	c.mu.Unlock()
	return table.Clone(), nil
}

// Len returns the number of cached decodes.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
