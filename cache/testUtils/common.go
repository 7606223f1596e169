package testUtils

import (
	"time"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

type (
	getFunc      func(key string, result interface{}) (bool, error)
	getOrSetFunc func(key string, result interface{}, duration time.Duration, fetch func() (interface{}, error)) error
)

// Fetch simplifies writing fetch functions for GetOrSet.
func Fetch(value interface{}, err error) func() (interface{}, error) {
	return func() (interface{}, error) {
		return value, err
	}
}

// FetchPanic is a fetch function that fails the test if called.
func FetchPanic() (interface{}, error) {
	So(func() { panic("Fetch function should not have been called") }, ShouldNotPanic)
	return nil, nil
}

// The helpers below take methods instead of a cache to avoid an import cycle.
// Values are resolved folder names.

func GetOrSetCached(getOrSet getOrSetFunc, key string, duration time.Duration, expectedFolder string) {
	var folder string
	So(getOrSet(key, &folder, duration, FetchPanic), ShouldBeNil)
	So(folder, ShouldEqual, expectedFolder)
}

func GetOrSetFetch(getOrSet getOrSetFunc, key string, duration time.Duration, expectedFolder string) {
	var folder string
	So(getOrSet(key, &folder, duration, Fetch(expectedFolder, nil)), ShouldBeNil)
	So(folder, ShouldEqual, expectedFolder)
}

func GetOrSetError(getOrSet getOrSetFunc, key string, duration time.Duration, expectedErr error) {
	var folder string
	err := getOrSet(key, &folder, duration, Fetch(nil, expectedErr))
	So(err, ShouldNotBeNil)
	So(errors.Cause(err), ShouldEqual, expectedErr)
}

func GetCacheHit(get getFunc, key string, expectedFolder string) {
	var folder string
	hit, err := get(key, &folder)
	So(err, ShouldBeNil)
	So(hit, ShouldBeTrue)
	So(folder, ShouldEqual, expectedFolder)
}

func GetCacheMiss(get getFunc, key string) {
	var folder string
	hit, err := get(key, &folder)
	So(err, ShouldBeNil)
	So(hit, ShouldBeFalse)
}

func GetCacheError(get getFunc, key string) {
	var folder string
	_, err := get(key, &folder)
	So(err, ShouldNotBeNil)
}
