package cache

import (
	"time"

	"github.com/die-net/lrucache"
	"github.com/gregjones/httpcache"
)

const (
	defaultHTTPCacheSize = 64 * 1024 * 1024 // 64MB
	defaultHTTPCacheAge  = 24 * time.Hour
)

// HTTP returns the response cache used when downloading remote resource
// archives. Non positive arguments fall back to the defaults.
func HTTP(maxSize int64, maxAge time.Duration) httpcache.Cache {
	if maxSize <= 0 {
		maxSize = defaultHTTPCacheSize
	}
	if maxAge <= 0 {
		maxAge = defaultHTTPCacheAge
	}
	return lrucache.New(maxSize, int64(maxAge/time.Second))
}
