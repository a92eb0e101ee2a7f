package where

import (
	"path/filepath"
	"testing"

	"github.com/seekscript/seekscript/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestConfig(t *testing.T) {
	Convey("Given a custom config path", t, func() {
		t.Setenv(EnvConfigPath, "/custom/seekscript")

		Convey("Config should resolve to it", func() {
			So(Config(), ShouldEqual, "/custom/seekscript")
		})

		Convey("Logs should live under the config dir", func() {
			So(Logs(), ShouldEqual, filepath.Join("/custom/seekscript", "logs"))
		})
	})
}

func TestSidecars(t *testing.T) {
	Convey("Given a media file with subtitle files next to it", t, func() {
		fs := filesystem.API()
		So(fs.MkdirAll("/media", 0o755), ShouldBeNil)
		So(fs.WriteFile("/media/talk.mp4", nil, 0o644), ShouldBeNil)
		So(fs.WriteFile("/media/talk.en-GB-x-transcript.vtt", []byte("WEBVTT"), 0o644), ShouldBeNil)
		So(fs.WriteFile("/media/talk.fr.srt", nil, 0o644), ShouldBeNil)
		So(fs.WriteFile("/media/talk.txt", nil, 0o644), ShouldBeNil)
		So(fs.WriteFile("/media/other.vtt", nil, 0o644), ShouldBeNil)

		Convey("Only subtitle files with the same stem should be listed", func() {
			found := Sidecars("/media/talk.mp4")
			So(found, ShouldHaveLength, 2)
			So(found, ShouldContain, "/media/talk.en-GB-x-transcript.vtt")
			So(found, ShouldContain, "/media/talk.fr.srt")
		})
	})
}
