package dataset

import (
	"os"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

// Cache memoises parsed tables per absolute path. Entries expire after a TTL
// and are dropped when the file's size or modification time changes, or when
// a Watcher reports a change.
type Cache struct {
	items *gocache.Cache
}

type cacheEntry struct {
	table   *Table
	modTime time.Time
	size    int64
}

// NewCache creates a cache whose entries live for ttl.
func NewCache(ttl, cleanupInterval time.Duration) *Cache {
	return &Cache{
		items: gocache.New(ttl, cleanupInterval),
	}
}

// Load returns the parsed table for path, reading the file on a miss.
func (c *Cache) Load(path string) (*Table, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}

	info, err := os.Stat(key)
	if err != nil {
		c.items.Delete(key)
		return nil, err
	}

	if cached, ok := c.items.Get(key); ok {
		entry := cached.(*cacheEntry)
		if entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
			return entry.table, nil
		}
	}

	table, err := ReadFile(key)
	if err != nil {
		return nil, err
	}

	c.items.SetDefault(key, &cacheEntry{
		table:   table,
		modTime: info.ModTime(),
		size:    info.Size(),
	})

	log.Debug().Str("path", key).Int("rows", table.Len()).Msg("Dataset parsed and cached")

	return table, nil
}

// Invalidate drops the entry for path.
func (c *Cache) Invalidate(path string) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}
	if _, ok := c.items.Get(key); ok {
		c.items.Delete(key)
		log.Debug().Str("path", key).Msg("Dataset cache entry invalidated")
	}
}

// Len returns the number of cached tables, including expired ones not yet cleaned up.
func (c *Cache) Len() int {
	return c.items.ItemCount()
}

// Flush drops every entry.
func (c *Cache) Flush() {
	c.items.Flush()
}
