// Package kvcache is a read-through point-lookup cache sitting in front of
// tree searches. Hits avoid the descent entirely; the owner invalidates a
// key on every insert or remove of it.
package kvcache

import (
	"errors"

	"github.com/dgraph-io/ristretto/v2"
)

var ErrIllegalCapacity = errors.New("cache capacity must be positive")

type Cache struct {
	c *ristretto.Cache[int64, int64]
}

// New builds a cache bounded to roughly maxEntries entries.
func New(maxEntries int64) (*Cache, error) {
	if maxEntries <= 0 {
		return nil, ErrIllegalCapacity
	}
	c, err := ristretto.NewCache(&ristretto.Config[int64, int64]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{c: c}, nil
}

func (c *Cache) Get(key int64) (int64, bool) {
	return c.c.Get(key)
}

// Put records a looked-up value. Admission is best effort.
func (c *Cache) Put(key, value int64) {
	c.c.Set(key, value, 1)
}

func (c *Cache) Del(key int64) {
	c.c.Del(key)
}

// Wait blocks until buffered writes are applied. Mostly for tests.
func (c *Cache) Wait() {
	c.c.Wait()
}

func (c *Cache) Close() {
	c.c.Close()
}
