package redis

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const redisLogCategory = "resconfig_redis_cache"

func (r *redisC) logger(code, key string) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"category":  redisLogCategory,
		"code":      code,
		"namespace": r.keyNamespace,
		"key":       key,
	})
}

// namespaced scopes a cache key to the namespace, so several deployments can
// share a database.
func (r *redisC) namespaced(key string) (string, error) {
	if key == "" {
		return "", errors.Errorf("Cache key must not be empty (namespace: %s)", r.keyNamespace)
	}
	return r.keyNamespace + ":" + key, nil
}

// expirySeconds rounds an expiration down to whole seconds, with a floor of
// one since SET EX refuses zero.
func expirySeconds(d time.Duration) int {
	if s := int(d / time.Second); s > 1 {
		return s
	}
	return 1
}
