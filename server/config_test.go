package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func writeConfig(content string) string {
	dir, err := os.MkdirTemp("", "resconfig")
	So(err, ShouldBeNil)
	path := filepath.Join(dir, "config.yaml")
	So(os.WriteFile(path, []byte(content), 0644), ShouldBeNil)
	return path
}

func TestConfig(t *testing.T) {
	Convey("Config", t, func() {
		Convey("The defaults should be valid", func() {
			config := DefaultConfig()
			So(config.Validate(), ShouldBeNil)
			So(config.RedisEnabled(), ShouldBeFalse)
		})

		Convey("It should load a file over the defaults", func() {
			path := writeConfig(`
listen: ":9090"
log_level: debug
cache:
  ttl: 10m
redis:
  endpoint: localhost:6379
index:
  dirs: [app/src/main/res]
  ignore: ["**/.DS_Store"]
  watch: true
  refresh_backoff: 1m
`)
			defer os.RemoveAll(filepath.Dir(path))

			config, err := LoadFromFile(path)
			So(err, ShouldBeNil)
			So(config.Listen, ShouldEqual, ":9090")
			So(config.ServiceName, ShouldEqual, "resconfig")
			So(config.Cache.TTL, ShouldEqual, 10*time.Minute)
			So(config.Cache.LocalTTL, ShouldEqual, 5*time.Minute)
			So(config.RedisEnabled(), ShouldBeTrue)
			So(config.Index.Dirs, ShouldResemble, []string{"app/src/main/res"})
			So(config.Index.Ignore, ShouldResemble, []string{"**/.DS_Store"})
			So(config.Index.Watch, ShouldBeTrue)
			So(config.Index.RefreshBackoff, ShouldEqual, time.Minute)
		})

		Convey("It should refuse invalid values", func() {
			path := writeConfig("log_level: loud\n")
			defer os.RemoveAll(filepath.Dir(path))
			_, err := LoadFromFile(path)
			So(err, ShouldNotBeNil)

			config := DefaultConfig()
			config.Cache.TTL = 0
			So(config.Validate(), ShouldNotBeNil)

			config = DefaultConfig()
			config.Index.Ignore = []string{"values/[a-"}
			So(config.Validate(), ShouldNotBeNil)
		})

		Convey("It should fail on a missing or broken file", func() {
			_, err := LoadFromFile("/nonexistent/config.yaml")
			So(err, ShouldNotBeNil)

			path := writeConfig("listen: [")
			defer os.RemoveAll(filepath.Dir(path))
			_, err = LoadFromFile(path)
			So(err, ShouldNotBeNil)
		})
	})
}
