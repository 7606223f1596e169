package cache

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/vtex/go-resconfig/reflext"
)

const (
	hybridCacheLogCategory = "resconfig_hybrid_cache"
)

// Hybrid layers a local cache in front of a remote one shared by every resolver
// instance. Values travel as JSON in both layers. A zero maxLocalTTL keeps local
// entries for as long as the remote ones.
func Hybrid(local, remote Cache, maxLocalTTL time.Duration) Cache {
	return &hybridCache{local: local, remote: remote, maxLocalTTL: maxLocalTTL}
}

type hybridCache struct {
	local       Cache
	remote      Cache
	maxLocalTTL time.Duration
}

func (c *hybridCache) Get(key string, result interface{}) (bool, error) {
	hit, localErr := c.getLocal(key, result)
	if hit {
		return true, nil
	}

	var remoteData cachedValue
	hit, err := c.remote.Get(key, &remoteData)
	if err != nil {
		return false, errors.Wrapf(err, "Unable to fetch %s from remote cache", key)
	}
	if !hit {
		return false, localErr
	}

	if err := json.Unmarshal(remoteData.Value, result); err != nil {
		return false, errors.Wrapf(err, "Unable to decode %s from remote cache", key)
	}

	// Clocks may differ between instances; never store with a negative duration.
	if ttl := remoteData.TTL(); ttl > 0 {
		c.local.Set(key, remoteData.Value, c.localTTL(ttl))
	}
	return true, nil
}

// getLocal never fails the lookup by itself: a broken local entry is logged and
// the remote layer gets a chance to answer.
func (c *hybridCache) getLocal(key string, result interface{}) (bool, error) {
	var raw json.RawMessage
	hit, err := c.local.Get(key, &raw)
	if err != nil {
		logGetLocalDataError(key, false, err)
		return false, err
	}
	if !hit {
		return false, nil
	}

	if err := json.Unmarshal(raw, result); err != nil {
		logGetLocalDataError(key, true, err)
		return false, err
	}
	return true, nil
}

func (c *hybridCache) Set(key string, value interface{}, duration time.Duration) error {
	if err := ensureValidCacheKey(key); err != nil {
		return err
	}

	data, err := newCachedValue(value, duration)
	if err != nil {
		return errors.Wrapf(err, "Failed to encode %s", key)
	}

	if err := c.local.Set(key, data.Value, c.localTTL(duration)); err != nil {
		return errors.Wrapf(err, "Failed to save %s into local cache", key)
	}
	if err := c.remote.Set(key, data, duration); err != nil {
		return errors.Wrapf(err, "Failed to save %s into remote cache", key)
	}
	return nil
}

func (c *hybridCache) GetOrSet(key string, result interface{}, duration time.Duration, fetch func() (interface{}, error)) error {
	if err := ensureValidCacheKey(key); err != nil {
		return err
	}

	hit, err := c.Get(key, result)
	if err != nil {
		// A failing cache should not fail a resolution that can still be computed.
		logGetRemoteDataError(key, err)
	}
	if hit {
		return nil
	}

	value, err := fetch()
	if err != nil {
		return err
	}

	if err := c.Set(key, value, duration); err != nil {
		logger(hybridCacheLogCategory, "set_error", key).WithError(err).Warn("Failed to cache fetched value")
	}
	return reflext.SetPointer(result, value)
}

func (c *hybridCache) localTTL(ttl time.Duration) time.Duration {
	if c.maxLocalTTL > 0 && ttl > c.maxLocalTTL {
		return c.maxLocalTTL
	}
	return ttl
}

func logGetLocalDataError(key string, cached bool, err error) {
	logger(hybridCacheLogCategory, "get_local_error", key).
		WithField("isHit", cached).
		WithError(err).
		Error("Failed to get data from local cache")
}

func logGetRemoteDataError(key string, err error) {
	logger(hybridCacheLogCategory, "get_remote_error", key).
		WithError(err).
		Error("Failed to get data from remote cache")
}
