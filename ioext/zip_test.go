package ioext

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestZip(t *testing.T) {
	Convey("ZipList", t, func() {
		Convey("It should list the files of an archive in order", func() {
			var archive bytes.Buffer
			So(ZipCompressTo(&archive, map[string][]byte{
				"res/values/strings.xml":     []byte("<resources/>"),
				"res/values-en/strings.xml":  []byte("<resources/>"),
				"res/drawable-hdpi/icon.png": {0x89, 0x50},
				"res/layout-land/main.xml":   []byte("<LinearLayout/>"),
			}), ShouldBeNil)

			names, err := ZipList(archive.Bytes())
			So(err, ShouldBeNil)
			So(names, ShouldResemble, []string{
				"res/drawable-hdpi/icon.png",
				"res/layout-land/main.xml",
				"res/values-en/strings.xml",
				"res/values/strings.xml",
			})
		})

		Convey("It should return nothing for an empty archive", func() {
			names, err := ZipList(nil)
			So(err, ShouldBeNil)
			So(names, ShouldBeEmpty)
		})

		Convey("It should fail on bytes that are not an archive", func() {
			_, err := ZipList([]byte("not a zip"))
			So(err, ShouldNotBeNil)
		})
	})

	Convey("ReadAll", t, func() {
		data, release, err := ReadAll(strings.NewReader("res/values-en"))
		So(err, ShouldBeNil)
		So(string(data), ShouldEqual, "res/values-en")
		release()
	})
}
