package store

import (
	"context"
	"fmt"
	"slices"

	lru "github.com/hashicorp/golang-lru"
)

// Cached serves repeated loads from an LRU and writes through to the
// wrapped store.
type Cached struct {
	Store
	cache *lru.Cache
}

func NewCached(s Store, size int) (*Cached, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create save cache: %w", err)
	}
	return &Cached{Store: s, cache: cache}, nil
}

func (c *Cached) Save(ctx context.Context, slot string, data []byte) error {
	if err := c.Store.Save(ctx, slot, data); err != nil {
		c.cache.Remove(slot)
		return err
	}
	c.cache.Add(slot, slices.Clone(data))
	return nil
}

func (c *Cached) Load(ctx context.Context, slot string) ([]byte, error) {
	if v, ok := c.cache.Get(slot); ok {
		return slices.Clone(v.([]byte)), nil
	}
	data, err := c.Store.Load(ctx, slot)
	if err != nil {
		return nil, err
	}
	c.cache.Add(slot, slices.Clone(data))
	return data, nil
}

func (c *Cached) Delete(ctx context.Context, slot string) error {
	c.cache.Remove(slot)
	return c.Store.Delete(ctx, slot)
}

// Holds reports whether slot is currently held in memory.
func (c *Cached) Holds(slot string) bool {
	return c.cache.Contains(slot)
}
