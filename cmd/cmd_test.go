package cmd

import (
	"sort"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestErrUnknownKey(t *testing.T) {
	Convey("Given a mistyped config key", t, func() {
		err := errUnknownKey("transcript.polcy")

		Convey("The closest known key should be suggested", func() {
			So(err.Error(), ShouldContainSubstring, "transcript.policy")
		})
	})
}

func TestInstallHint(t *testing.T) {
	Convey("installHint", t, func() {
		So(installHint("darwin"), ShouldEqual, "brew install mpv")
		So(installHint("windows"), ShouldEqual, "scoop install mpv")
		So(installHint("plan9"), ShouldBeEmpty)
	})
}

func TestRepairing(t *testing.T) {
	Convey("Repairing", t, func() {
		So(Repairing([]string{"config", "reset", "--all"}), ShouldBeTrue)
		So(Repairing([]string{"--policy=single", "config", "set"}), ShouldBeTrue)
		So(Repairing([]string{"talk.mp4"}), ShouldBeFalse)
		So(Repairing(nil), ShouldBeFalse)
	})
}

func TestEnvNames(t *testing.T) {
	Convey("envNames", t, func() {
		names := envNames()
		So(names, ShouldContain, "SEEKSCRIPT_TRANSCRIPT_POLICY")
		So(names, ShouldContain, "SEEKSCRIPT_CONFIG_PATH")
		So(sort.StringsAreSorted(names), ShouldBeTrue)
	})
}
