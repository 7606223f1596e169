package redis

import (
	"encoding/json"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/pkg/errors"
	"github.com/vtex/go-resconfig/reflext"
)

// Cache is the remote cache shared by resolver instances. It satisfies the
// cache.Cache interface so it can sit behind cache.Hybrid.
type Cache interface {
	Get(key string, result interface{}) (bool, error)
	Set(key string, value interface{}, expireIn time.Duration) error
	GetOrSet(key string, result interface{}, expireIn time.Duration, fetch func() (interface{}, error)) error
	Ping() error
}

type Config struct {
	Endpoint  string `yaml:"endpoint"`
	Password  string `yaml:"password"`
	Database  int    `yaml:"database"`
	Namespace string `yaml:"namespace"`
	MaxIdle   int    `yaml:"max_idle"`
	MaxActive int    `yaml:"max_active"`
}

func (c Config) withDefaults() Config {
	if c.Namespace == "" {
		c.Namespace = "resconfig"
	}
	if c.MaxIdle <= 0 {
		c.MaxIdle = 30
	}
	if c.MaxActive <= 0 {
		c.MaxActive = 70
	}
	return c
}

func New(config Config) Cache {
	config = config.withDefaults()
	pool := newRedisPool(config)
	return &redisC{pool: pool, keyNamespace: config.Namespace}
}

type redisC struct {
	pool         *redis.Pool
	keyNamespace string
}

func (r *redisC) Get(key string, result interface{}) (bool, error) {
	key, err := r.namespaced(key)
	if err != nil {
		return false, err
	}

	reply, err := redis.Bytes(r.doCmd("GET", key))
	if err == redis.ErrNil {
		return false, nil
	} else if err != nil {
		return false, errors.WithStack(err)
	}

	if err := json.Unmarshal(reply, result); err != nil {
		return false, errors.Wrapf(err, "Failed to unmarshal Redis value of %s", key)
	}
	return true, nil
}

func (r *redisC) Set(key string, value interface{}, expireIn time.Duration) error {
	key, err := r.namespaced(key)
	if err != nil {
		return err
	}

	bytes, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "Failed to marshal value for saving to Redis")
	}

	if _, err := r.doCmd("SET", key, bytes, "EX", expirySeconds(expireIn)); err != nil {
		return errors.Wrap(err, "Failed SET command on Redis")
	}
	return nil
}

func (r *redisC) GetOrSet(key string, result interface{}, expireIn time.Duration, fetch func() (interface{}, error)) error {
	if ok, err := r.Get(key, result); ok {
		return nil
	} else if err != nil {
		r.logger("get_error", key).WithError(err).Error("Failed to get data from Redis")
	}

	value, err := fetch()
	if err != nil {
		return err
	}

	if err := r.Set(key, value, expireIn); err != nil {
		r.logger("set_error", key).WithError(err).Error("Failed to save data to Redis")
	}
	return reflext.SetPointer(result, value)
}

func (r *redisC) Ping() error {
	if _, err := r.doCmd("PING"); err != nil {
		return errors.Wrapf(err, "Redis is unreachable (namespace: %s)", r.keyNamespace)
	}
	return nil
}

func (r *redisC) doCmd(cmd string, args ...interface{}) (interface{}, error) {
	conn := r.pool.Get()
	defer conn.Close()
	return conn.Do(cmd, args...)
}
