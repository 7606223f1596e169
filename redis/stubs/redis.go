package stubs

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/vtex/go-resconfig/redis"
	"github.com/vtex/go-resconfig/reflext"
)

// Redis stands in for a Redis server in tests. Values are kept as JSON and
// never expire. PingErr, when set, is what Ping reports.
type Redis struct {
	PingErr error

	mu     sync.Mutex
	values map[string][]byte
}

var _ redis.Cache = (*Redis)(nil)

func NewRedis() *Redis {
	return &Redis{values: map[string][]byte{}}
}

func (r *Redis) Get(key string, result interface{}) (bool, error) {
	r.mu.Lock()
	data, ok := r.values[key]
	r.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return false, errors.Wrapf(err, "Failed to decode stubbed value of %s", key)
	}
	return true, nil
}

func (r *Redis) Set(key string, value interface{}, expireIn time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "Failed to encode stubbed value of %s", key)
	}
	r.mu.Lock()
	r.values[key] = data
	r.mu.Unlock()
	return nil
}

func (r *Redis) GetOrSet(key string, result interface{}, expireIn time.Duration, fetch func() (interface{}, error)) error {
	if hit, err := r.Get(key, result); hit || err != nil {
		return err
	}
	value, err := fetch()
	if err != nil {
		return err
	}
	if err := r.Set(key, value, expireIn); err != nil {
		return err
	}
	return reflext.SetPointer(result, value)
}

// Len returns how many keys were stored.
func (r *Redis) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

func (r *Redis) Ping() error {
	return r.PingErr
}
