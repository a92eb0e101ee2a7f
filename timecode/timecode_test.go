package timecode

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFormat(t *testing.T) {
	Convey("Format", t, func() {
		Convey("Should render minutes and seconds", func() {
			So(Format(0, false), ShouldEqual, "00:00")
			So(Format(65.9, false), ShouldEqual, "01:05")
			So(Format(599, false), ShouldEqual, "09:59")
		})

		Convey("Should add hours when forced or needed", func() {
			So(Format(65, true), ShouldEqual, "00:01:05")
			So(Format(3725, false), ShouldEqual, "01:02:05")
		})

		Convey("Should clamp invalid input to zero", func() {
			So(Format(-3, false), ShouldEqual, "00:00")
			So(Format(math.NaN(), false), ShouldEqual, "00:00")
		})
	})

	Convey("ForDuration", t, func() {
		So(ForDuration(30, 100), ShouldEqual, "00:30")
		So(ForDuration(30, 3600), ShouldEqual, "00:00:30")
	})
}

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("Should read what Format writes", func() {
			for _, seconds := range []float64{0, 65, 599, 3725} {
				parsed, err := Parse(Format(seconds, false))
				So(err, ShouldBeNil)
				So(parsed, ShouldEqual, seconds)
			}
		})

		Convey("Should accept fractional seconds", func() {
			parsed, err := Parse("1:23.5")
			So(err, ShouldBeNil)
			So(parsed, ShouldEqual, 83.5)
		})

		Convey("Should reject malformed labels", func() {
			for _, label := range []string{"", "12", "1:2:3:4", "a:10", "01:75", "1.5:00"} {
				_, err := Parse(label)
				So(err, ShouldNotBeNil)
			}
		})
	})
}
