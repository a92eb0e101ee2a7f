package subtitle

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/seekscript/seekscript/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

const vtt = `WEBVTT

00:00:00.000 --> 00:00:02.000
hello

00:00:02.000 --> 00:00:05.500
brave
world
`

const srt = `1
00:00:01,000 --> 00:00:03,000
first line

2
00:00:04,000 --> 00:00:06,000
second line
`

func init() {
	filesystem.SetMemMapFs()
}

func TestLang(t *testing.T) {
	Convey("Lang", t, func() {
		So(Lang("/media/talk.en-GB-x-transcript.vtt"), ShouldEqual, "en-GB-x-transcript")
		So(Lang("talk.fr.srt"), ShouldEqual, "fr")
		So(Lang("talk.vtt"), ShouldEqual, "")
	})
}

func TestParse(t *testing.T) {
	Convey("Given a WebVTT document", t, func() {
		track, err := Parse(strings.NewReader(vtt), ".vtt")
		So(err, ShouldBeNil)

		Convey("Cues should be read in order with seconds", func() {
			So(track.Cues, ShouldHaveLength, 2)
			So(track.Cues[0].Text, ShouldEqual, "hello")
			So(track.Cues[1].Index, ShouldEqual, 1)
			So(track.Cues[1].Start, ShouldEqual, 2)
			So(track.Cues[1].Stop, ShouldEqual, 5.5)
		})

		Convey("Multi-line cues should be joined", func() {
			So(track.Cues[1].Text, ShouldEqual, "brave world")
		})
	})

	Convey("Given an SRT document", t, func() {
		track, err := Parse(strings.NewReader(srt), ".SRT")
		So(err, ShouldBeNil)
		So(track.Cues, ShouldHaveLength, 2)
		So(track.Cues[0].Start, ShouldEqual, 1)
		So(track.Cues[1].Text, ShouldEqual, "second line")
	})

	Convey("Unknown formats should be rejected", t, func() {
		_, err := Parse(strings.NewReader(""), ".ass")
		So(err, ShouldNotBeNil)
	})
}

func TestLoad(t *testing.T) {
	Convey("Given subtitle files on disk", t, func() {
		fs := filesystem.API()
		So(fs.WriteFile("/subs/talk.en-x-transcript.vtt", []byte(vtt), 0o644), ShouldBeNil)
		So(fs.WriteFile("/subs/talk.fr.srt", []byte(srt), 0o644), ShouldBeNil)

		Convey("Load should tag the track with the file language", func() {
			track, err := Load("/subs/talk.en-x-transcript.vtt")
			So(err, ShouldBeNil)
			So(track.Lang, ShouldEqual, "en-x-transcript")
			So(track.Cues, ShouldHaveLength, 2)
		})

		Convey("Missing files should fail", func() {
			_, err := Load("/subs/missing.vtt")
			So(err, ShouldNotBeNil)
		})

		Convey("The loader should signal once with every readable track", func() {
			loader := NewLoader("/subs/talk.fr.srt", "/subs/missing.vtt", "/subs/talk.en-x-transcript.vtt")
			loader.Start(context.Background())
			loader.Start(context.Background())

			select {
			case tracks, ok := <-loader.Loaded():
				So(ok, ShouldBeTrue)
				So(tracks, ShouldHaveLength, 2)
				So(tracks[0].Lang, ShouldEqual, "fr")
				So(tracks[1].Lang, ShouldEqual, "en-x-transcript")
			case <-time.After(2 * time.Second):
				So("loader timed out", ShouldBeEmpty)
			}

			_, ok := <-loader.Loaded()
			So(ok, ShouldBeFalse)
			So(loader.Err(), ShouldNotBeNil)
		})

		Convey("A cancelled loader should close without tracks", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			loader := NewLoader("/subs/talk.fr.srt")
			loader.Start(ctx)

			_, ok := <-loader.Loaded()
			So(ok, ShouldBeFalse)
		})
	})
}
