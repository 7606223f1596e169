package redis

import (
	"time"

	"github.com/gomodule/redigo/redis"
)

const (
	dialTimeout       = 1 * time.Second
	writeTimeout      = 200 * time.Millisecond
	readTimeout       = 200 * time.Millisecond
	idlePingThreshold = 30 * time.Second
	idleConnTimeout   = 3 * time.Minute
)

func newRedisPool(config Config) *redis.Pool {
	dialOpts := []redis.DialOption{
		redis.DialConnectTimeout(dialTimeout),
		redis.DialWriteTimeout(writeTimeout),
		redis.DialReadTimeout(readTimeout),
		redis.DialDatabase(config.Database),
	}
	if config.Password != "" {
		dialOpts = append(dialOpts, redis.DialPassword(config.Password))
	}

	return &redis.Pool{
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", config.Endpoint, dialOpts...)
		},
		// Connections idle for a while are pinged before reuse.
		TestOnBorrow: func(conn redis.Conn, idleSince time.Time) error {
			if time.Since(idleSince) < idlePingThreshold {
				return nil
			}
			_, err := conn.Do("PING")
			return err
		},
		MaxIdle:     config.MaxIdle,
		MaxActive:   config.MaxActive,
		Wait:        true,
		IdleTimeout: idleConnTimeout,
	}
}
