package cache

import (
	"time"
)

// Cache stores resolver results and parsed configurations by key. Values handed to
// Set may be serialized as JSON by some implementations, so they must survive a
// JSON round trip.
type Cache interface {
	Get(key string, result interface{}) (hit bool, err error)
	Set(key string, value interface{}, duration time.Duration) error
	GetOrSet(key string, result interface{}, duration time.Duration, fetch func() (interface{}, error)) error
}
