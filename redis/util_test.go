package redis

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestKeys(t *testing.T) {
	Convey("namespaced", t, func() {
		r := &redisC{keyNamespace: "resconfig"}

		Convey("It should prefix keys with the namespace", func() {
			key, err := r.namespaced("folder:values-en")
			So(err, ShouldBeNil)
			So(key, ShouldEqual, "resconfig:folder:values-en")
		})

		Convey("It should refuse empty keys", func() {
			_, err := r.namespaced("")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("expirySeconds", t, func() {
		So(expirySeconds(time.Hour), ShouldEqual, 3600)
		So(expirySeconds(1500*time.Millisecond), ShouldEqual, 1)
		So(expirySeconds(0), ShouldEqual, 1)
		So(expirySeconds(-time.Minute), ShouldEqual, 1)
	})

	Convey("Config defaults", t, func() {
		config := Config{Endpoint: "localhost:6379"}.withDefaults()
		So(config.Namespace, ShouldEqual, "resconfig")
		So(config.MaxIdle, ShouldEqual, 30)
		So(config.MaxActive, ShouldEqual, 70)

		config = Config{Namespace: "other", MaxActive: 5}.withDefaults()
		So(config.Namespace, ShouldEqual, "other")
		So(config.MaxActive, ShouldEqual, 5)
	})
}
