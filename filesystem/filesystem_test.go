package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBackend(t *testing.T) {
	Convey("Given the in-memory backend", t, func() {
		SetMemMapFs()
		defer SetOsFs()

		So(API().Name(), ShouldEqual, "MemMapFS")

		Convey("Files written through API should be readable through API", func() {
			So(API().WriteFile("/subs/talk.vtt", []byte("WEBVTT"), 0o644), ShouldBeNil)

			data, err := API().ReadFile("/subs/talk.vtt")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "WEBVTT")
		})

		Convey("Switching backends should drop the in-memory files", func() {
			So(API().WriteFile("/subs/talk.vtt", nil, 0o644), ShouldBeNil)
			SetMemMapFs()

			exists, err := API().Exists("/subs/talk.vtt")
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)
		})
	})

	Convey("The default backend should be the OS", t, func() {
		So(API().Name(), ShouldEqual, "OsFs")
	})
}
