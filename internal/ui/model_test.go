package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		m := &Model{}

		Convey("It should not touch the view without a notification", func() {
			So(m.View("a\nb"), ShouldEqual, "a\nb")
		})

		Convey("A notification should be shown on the last line", func() {
			cmd := m.Update(Notify("No match")())
			So(cmd, ShouldNotBeNil)
			So(m.Current(), ShouldEqual, "No match")
			So(m.View("a\nb"), ShouldStartWith, "a\nb  ")
			So(m.View("a\nb"), ShouldContainSubstring, "No match")

			Convey("A stale clear should not hide a newer notification", func() {
				stale := ClearNotificationMsg{}
				m.Update(stale)
				So(m.Current(), ShouldEqual, "No match")

				m.Update(ClearNotificationMsg{at: m.notifiedAt})
				So(m.Current(), ShouldBeEmpty)
			})
		})
	})
}
