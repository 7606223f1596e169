package cache

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	. "github.com/vtex/go-resconfig/cache/testUtils"
	"github.com/vtex/go-resconfig/folderconfig"
)

func TestMemoryCache(t *testing.T) {
	Convey("Memory cache", t, func() {
		subject := NewMemory()
		duration := time.Minute

		Convey("It should keep folder names", func() {
			key := FolderKey("values-en")
			GetCacheMiss(subject.Get, key)
			GetOrSetFetch(subject.GetOrSet, key, duration, "values-en")
			GetOrSetCached(subject.GetOrSet, key, duration, "values-en")
		})

		Convey("It should keep parsed configurations without copying them", func() {
			key := FolderKey("values-en-hdpi")
			config := folderconfig.MustParse("en-hdpi")

			var cached *folderconfig.Configuration
			So(subject.GetOrSet(key, &cached, duration, Fetch(config, nil)), ShouldBeNil)
			So(cached, ShouldEqual, config)

			var again *folderconfig.Configuration
			hit, err := subject.Get(key, &again)
			So(err, ShouldBeNil)
			So(hit, ShouldBeTrue)
			So(again, ShouldEqual, config)
		})

		Convey("It should refuse a result of another type", func() {
			key := FolderKey("values")
			So(subject.Set(key, "values", duration), ShouldBeNil)

			var wrong int
			_, err := subject.Get(key, &wrong)
			So(err, ShouldNotBeNil)
		})

		Convey("It should refuse empty keys", func() {
			So(subject.Set("", "values", duration), ShouldNotBeNil)
			var folder string
			So(subject.GetOrSet("", &folder, duration, FetchPanic), ShouldNotBeNil)
		})

		Convey("It should forget expired entries", func() {
			key := FolderKey("values-fr")
			So(subject.Set(key, "values-fr", 10*time.Millisecond), ShouldBeNil)
			time.Sleep(20 * time.Millisecond)
			GetCacheMiss(subject.Get, key)
		})
	})

	Convey("Keys", t, func() {
		So(FolderKey("values-en"), ShouldEqual, "folder:values-en")

		key := ResolveKey("en", []string{"values", "values-en"})
		So(key, ShouldStartWith, "resolve:2:")
		So(ResolveKey("en", []string{"values", "values-en"}), ShouldEqual, key)
		So(ResolveKey("en", []string{"values-en", "values"}), ShouldNotEqual, key)
		So(ResolveKey("fr", []string{"values", "values-en"}), ShouldNotEqual, key)
	})
}
