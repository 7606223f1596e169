package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func run(args ...string) (string, error) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	Convey("match", t, func() {
		out, err := run("match", "-r", "en-hdpi", "values", "values-en", "values-en-hdpi", "values-fr")
		So(err, ShouldBeNil)
		So(out, ShouldEqual, "values-en-hdpi\n")

		_, err = run("match", "-r", "en", "values-fr")
		So(err, ShouldNotBeNil)

		_, err = run("match", "-r", "hdpi-en", "values")
		So(err, ShouldNotBeNil)
	})

	Convey("parse", t, func() {
		out, err := run("parse", "values-en-rUS")
		So(err, ShouldBeNil)
		So(out, ShouldContainSubstring, "values-en-rUS: Language en, Region US")
		So(out, ShouldContainSubstring, "Region")

		out, err = run("parse", "--normalize", "layout-sw600dp")
		So(err, ShouldBeNil)
		So(out, ShouldContainSubstring, "v13")

		out, err = run("parse", "values-hdpi-en")
		So(err, ShouldNotBeNil)
		So(out, ShouldContainSubstring, "values-hdpi-en: invalid")
	})

	Convey("index", t, func() {
		root, err := os.MkdirTemp("", "res")
		So(err, ShouldBeNil)
		defer os.RemoveAll(root)
		for _, dir := range []string{"values", "values-fr"} {
			So(os.MkdirAll(filepath.Join(root, dir), 0755), ShouldBeNil)
			So(os.WriteFile(filepath.Join(root, dir, "strings.xml"), []byte("<resources/>"), 0644), ShouldBeNil)
		}

		out, err := run("index", root, "-r", "fr-rFR")
		So(err, ShouldBeNil)
		So(out, ShouldEqual, "values-fr\tstrings.xml\n")

		out, err = run("index", root, "-r", "fr-rFR", "--ignore", "values-fr/*")
		So(err, ShouldBeNil)
		So(out, ShouldEqual, "values\tstrings.xml\n")

		_, err = run("index", root, "-t", "layout")
		So(err, ShouldNotBeNil)
	})

	Convey("version", t, func() {
		out, err := run("version")
		So(err, ShouldBeNil)
		So(out, ShouldEqual, "resconfig version dev\n")
	})
}
