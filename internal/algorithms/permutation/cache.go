package permutation

import "sync"

// Cache builds each Table once per window shape and hands out the same
// read-only instance afterwards.
type Cache struct {
	mu     sync.RWMutex
	tables map[Shape]*Table
}

// Shared is the process-wide table cache.
var Shared = NewCache()

func NewCache() *Cache {
	return &Cache{
		tables: make(map[Shape]*Table),
	}
}

// Get returns the table for a dx by dy window, building it on first use.
func (c *Cache) Get(dx, dy int) (*Table, error) {
	shape := Shape{DX: dx, DY: dy}

	c.mu.RLock()
	table, exists := c.tables[shape]
	c.mu.RUnlock()
	if exists {
		return table, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if table, exists := c.tables[shape]; exists {
		return table, nil
	}

	table, err := NewTable(dx, dy)
	if err != nil {
		return nil, err
	}
	c.tables[shape] = table
	return table, nil
}

// Len reports how many shapes are cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}
