package cache

import (
	"time"

	gocache "github.com/pmylund/go-cache"
	"github.com/vtex/go-resconfig/reflext"
)

const (
	defaultMemoryTTL     = 60 * time.Minute
	defaultMemoryCleanup = 10 * time.Minute
)

// NewMemory returns an in-process cache. Values are kept as they are, without
// serialization, so callers must not mutate what they get back.
func NewMemory() Cache {
	return NewMemoryWithTTL(defaultMemoryTTL, defaultMemoryCleanup)
}

func NewMemoryWithTTL(defaultTTL, cleanupInterval time.Duration) Cache {
	return &memCache{gocache.New(defaultTTL, cleanupInterval)}
}

type memCache struct {
	cache *gocache.Cache
}

func (c *memCache) GetOrSet(key string, result interface{}, duration time.Duration, fetch func() (interface{}, error)) error {
	if err := ensureValidCacheKey(key); err != nil {
		return err
	}

	if cached, _ := c.Get(key, result); cached {
		return nil
	}

	value, err := fetch()
	if err != nil {
		return err
	}

	c.Set(key, value, duration)
	return reflext.SetPointer(result, value)
}

func (c *memCache) Get(key string, result interface{}) (bool, error) {
	value, cached := c.cache.Get(key)
	if !cached {
		return false, nil
	}

	return true, reflext.SetPointer(result, value)
}

func (c *memCache) Set(key string, value interface{}, duration time.Duration) error {
	if err := ensureValidCacheKey(key); err != nil {
		return err
	}
	c.cache.Set(key, value, duration)
	return nil
}
