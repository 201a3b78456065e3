package service

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dgraph-io/ristretto"
)

// resultCache memoizes computed analyses per user. Every entry key embeds the
// user's generation, so bumping the generation orphans all of that user's entries
// and ristretto evicts them under cost pressure.
type resultCache struct {
	cache *ristretto.Cache

	mu          sync.Mutex
	generations map[string]uint64
}

// newResultCache builds a cache holding at most maxEntries results.
func newResultCache(maxEntries int64) (*resultCache, error) {
	if maxEntries <= 0 {
		maxEntries = 10_000
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,

		// Every entry costs 1 so MaxCost is an entry count.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}
	return &resultCache{cache: c, generations: make(map[string]uint64)}, nil
}

func (c *resultCache) generation(userID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[userID]
}

// invalidate drops every cached result of userID.
func (c *resultCache) invalidate(userID string) {
	c.mu.Lock()
	c.generations[userID]++
	c.mu.Unlock()
}

// key derives the entry key from the procedure, user, generation and input.
func (c *resultCache) key(procedure, userID string, input any) (string, error) {
	b, err := json.Marshal(input)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s|%s|%d|%s", procedure, userID, c.generation(userID), b), nil
}

func (c *resultCache) get(key string) (any, bool) {
	return c.cache.Get(key)
}

func (c *resultCache) set(key string, value any) {
	c.cache.Set(key, value, 1)
	c.cache.Wait()
}

func (c *resultCache) close() {
	c.cache.Close()
}
