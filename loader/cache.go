package loader

import (
	"context"
	"sync"
	"time"

	"github.com/carbocation/variantatlas/variant"
)

// LoadFunc produces a table. Load with fixed Options is the usual one.
type LoadFunc func(ctx context.Context) (*variant.Table, error)

// Cache loads the variant table once and hands the same read-only table to
// every caller afterwards. Failed loads are not remembered, so a data file
// that appears later is picked up on the next call. There is no file
// watching; Reset is the only invalidation.
type Cache struct {
	load LoadFunc

	mu       sync.Mutex
	table    *variant.Table
	loadedAt time.Time
}

// NewCache returns a Cache backed by Load(ctx, opts).
func NewCache(opts Options) *Cache {
	return NewCacheFunc(func(ctx context.Context) (*variant.Table, error) {
		return Load(ctx, opts)
	})
}

func NewCacheFunc(load LoadFunc) *Cache {
	return &Cache{load: load}
}

// Table returns the cached table, loading it on first use. Concurrent first
// callers wait for a single load.
func (c *Cache) Table(ctx context.Context) (*variant.Table, error) {
	table, _, err := c.Fetch(ctx)
	return table, err
}

// Fetch is Table, and also reports whether this call ran the load func.
// Exactly one caller sees loaded == true for every load attempt, failed or
// not.
func (c *Cache) Fetch(ctx context.Context) (table *variant.Table, loaded bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table != nil {
		return c.table, false, nil
	}

	table, err = c.load(ctx)
	if err != nil {
		return nil, true, err
	}

	c.table = table
	c.loadedAt = time.Now()

	return c.table, true, nil
}

// LoadedAt reports when the cached table was loaded, and whether there is one.
func (c *Cache) LoadedAt() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loadedAt, c.table != nil
}

// Reset forgets the cached table.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.table = nil
	c.loadedAt = time.Time{}
}
