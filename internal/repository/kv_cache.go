package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// CachedKV is a read-through cache in front of a KeyValueStore.
// Writes go to the backing store first and then replace the cached copy.
type CachedKV struct {
	next  KeyValueStore
	cache *ristretto.Cache
}

// NewCachedKV wraps next with a ristretto cache holding up to maxItems values.
func NewCachedKV(next KeyValueStore, maxItems int64) (*CachedKV, error) {
	if maxItems <= 0 {
		maxItems = 1000
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxItems * 10, // number of keys to track frequency of
		MaxCost:     maxItems,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize kv cache: %w", err)
	}

	return &CachedKV{next: next, cache: cache}, nil
}

// Get serves key from the cache, falling back to the backing store.
func (c *CachedKV) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := c.cache.Get(key); ok {
		return clone(v.([]byte)), nil
	}

	value, err := c.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, clone(value), 1)
	return value, nil
}

// Set writes through to the backing store.
func (c *CachedKV) Set(ctx context.Context, key string, value []byte) error {
	if err := c.next.Set(ctx, key, value); err != nil {
		c.cache.Del(key)
		return err
	}

	c.cache.Del(key)
	c.cache.Set(key, clone(value), 1)
	c.cache.Wait()
	return nil
}

// Delete removes key from the backing store and the cache.
func (c *CachedKV) Delete(ctx context.Context, key string) error {
	c.cache.Del(key)
	return c.next.Delete(ctx, key)
}

// Count is not cached.
func (c *CachedKV) Count(ctx context.Context, prefix string) (int, error) {
	return c.next.Count(ctx, prefix)
}

// KeysUpdatedBefore is not cached.
func (c *CachedKV) KeysUpdatedBefore(ctx context.Context, prefix string, cutoff time.Time) ([]string, error) {
	return c.next.KeysUpdatedBefore(ctx, prefix, cutoff)
}

// Close releases the cache's background goroutines.
func (c *CachedKV) Close() {
	c.cache.Close()
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
