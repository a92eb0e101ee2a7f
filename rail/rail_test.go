package rail

import (
	"errors"
	"testing"

	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeGeometry struct {
	width, handle, left float64
}

func (g *fakeGeometry) TrackWidth() float64  { return g.width }
func (g *fakeGeometry) HandleWidth() float64 { return g.handle }
func (g *fakeGeometry) LeftEdge() float64    { return g.left }

type fakeMedia struct {
	duration mo.Option[float64]
	seeks    []float64
	paused   int
	seekErr  error
}

func (m *fakeMedia) Duration() mo.Option[float64] { return m.duration }
func (m *fakeMedia) Pause() error                 { m.paused++; return nil }
func (m *fakeMedia) SetCurrentTime(t float64) error {
	m.seeks = append(m.seeks, t)
	return m.seekErr
}

func newTestController(touch bool) (*Controller, *fakeGeometry, *fakeMedia, *test.Hook) {
	geometry := &fakeGeometry{width: 200, handle: 10, left: 20}
	media := &fakeMedia{duration: mo.Some(100.0)}
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	opts := DefaultOptions()
	opts.Touch = touch
	opts.Logger = logger
	return New(geometry, media, opts), geometry, media, hook
}

func TestOnTimeAdvance(t *testing.T) {
	Convey("Given a 200 wide rail and a 100 second media", t, func() {
		c, geometry, _, _ := newTestController(false)

		Convey("When time advances to 25 seconds", func() {
			c.OnTimeAdvance(25, mo.Some(100.0))

			Convey("Then the current bar covers a quarter of the rail", func() {
				So(c.Bars().Current, ShouldAlmostEqual, 50)
			})

			Convey("And the handle is centred on the bar edge", func() {
				So(c.Bars().HandleLeft, ShouldAlmostEqual, 45)
			})

			Convey("And the accessible state is refreshed", func() {
				s := c.Slider()
				So(s.Now, ShouldEqual, 25)
				So(s.Text, ShouldEqual, "00:25")
				So(s.Min, ShouldEqual, 0)
				So(s.Max, ShouldEqual, 100)
				So(s.Label, ShouldEqual, "Seek bar")
			})
		})

		Convey("Bar width should track currentTime/duration for many positions", func() {
			for _, current := range []float64{0, 1, 33.3, 50, 99.99, 100} {
				c.OnTimeAdvance(current, mo.Some(100.0))
				So(c.Bars().Current, ShouldAlmostEqual, 200*current/100, 1e-9)
			}
		})

		Convey("Geometry should be read live after a resize", func() {
			geometry.width = 400
			c.OnTimeAdvance(50, mo.Some(100.0))
			So(c.Bars().Current, ShouldAlmostEqual, 200)
		})

		Convey("Long media should render hours", func() {
			c.OnTimeAdvance(90, mo.Some(7200.0))
			So(c.Slider().Text, ShouldEqual, "00:01:30")
		})

		Convey("Unknown or zero durations should leave the bars untouched", func() {
			c.OnTimeAdvance(50, mo.Some(100.0))
			c.OnTimeAdvance(10, mo.None[float64]())
			c.OnTimeAdvance(10, mo.Some(0.0))
			So(c.Bars().Current, ShouldAlmostEqual, 100)
		})
	})
}

func TestOnBufferProgress(t *testing.T) {
	Convey("Given a 200 wide rail", t, func() {
		c, _, _, _ := newTestController(false)

		Convey("Buffered ranges should win over byte counters", func() {
			c.OnBufferProgress(BufferReport{
				Ranges:        []Range{{Start: 0, End: 30}, {Start: 60, End: 80}},
				Duration:      mo.Some(100.0),
				BufferedBytes: mo.Some[int64](90),
				TotalBytes:    100,
			})
			So(c.Bars().Loaded, ShouldAlmostEqual, 60)
		})

		Convey("Byte counters should be used without ranges", func() {
			c.OnBufferProgress(BufferReport{BufferedBytes: mo.Some[int64](25), TotalBytes: 100})
			So(c.Bars().Loaded, ShouldAlmostEqual, 50)
		})

		Convey("A generic progress event should be the last resort", func() {
			c.OnBufferProgress(BufferReport{LengthComputable: true, Loaded: 3, Total: 4})
			So(c.Bars().Loaded, ShouldAlmostEqual, 150)
		})

		Convey("Ratios outside [0,1] should be clamped", func() {
			c.OnBufferProgress(BufferReport{Ranges: []Range{{End: 100.4}}, Duration: mo.Some(100.0)})
			So(c.Bars().Loaded, ShouldAlmostEqual, 200)

			c.OnBufferProgress(BufferReport{LengthComputable: true, Loaded: -1, Total: 10})
			So(c.Bars().Loaded, ShouldAlmostEqual, 0)
		})

		Convey("An unusable report should keep the previous width", func() {
			c.OnBufferProgress(BufferReport{BufferedBytes: mo.Some[int64](50), TotalBytes: 100})
			c.OnBufferProgress(BufferReport{Ranges: []Range{{End: 10}}, Duration: mo.Some(0.0)})
			c.OnBufferProgress(BufferReport{})
			So(c.Bars().Loaded, ShouldAlmostEqual, 100)
		})
	})
}

func TestPreviewTime(t *testing.T) {
	Convey("PreviewTime", t, func() {
		d := mo.Some(100.0)

		Convey("The left edge should map to zero", func() {
			So(PreviewTime(0, 200, d).MustGet(), ShouldEqual, 0)
		})

		Convey("The dead-zone should snap to zero", func() {
			So(PreviewTime(2, 200, d).MustGet(), ShouldEqual, 0)
			So(PreviewTime(4, 200, d).MustGet(), ShouldEqual, 0)
		})

		Convey("The middle of the rail should map to half the duration", func() {
			So(PreviewTime(100, 200, d).MustGet(), ShouldAlmostEqual, 50)
		})

		Convey("Positions outside the rail should be ignored", func() {
			So(PreviewTime(-1, 200, d).IsAbsent(), ShouldBeTrue)
			So(PreviewTime(201, 200, d).IsAbsent(), ShouldBeTrue)
		})

		Convey("An unknown duration should be ignored", func() {
			So(PreviewTime(100, 200, mo.None[float64]()).IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestPointer(t *testing.T) {
	Convey("Given a rail starting at x=20", t, func() {
		c, _, media, _ := newTestController(false)

		Convey("Hovering should preview without seeking", func() {
			c.OnPointerEnter()
			c.OnPointerMove(120)

			So(media.seeks, ShouldBeEmpty)
			So(c.Float().Visible, ShouldBeTrue)
			So(c.Float().Left, ShouldAlmostEqual, 100)
			So(c.Float().Text, ShouldEqual, "00:50")
		})

		Convey("A primary press should start a drag and seek", func() {
			So(c.OnPointerDown(120, ButtonPrimary), ShouldBeTrue)
			So(c.Drag().PointerDown, ShouldBeTrue)
			So(media.seeks, ShouldResemble, []float64{50})

			Convey("Moves during the drag should commit seeks", func() {
				c.OnPointerMove(170)
				So(media.seeks, ShouldResemble, []float64{50, 75})
			})

			Convey("Moves outside the rail should be ignored, not clamped", func() {
				c.OnPointerMove(500)
				c.OnPointerMove(0)
				So(media.seeks, ShouldResemble, []float64{50})
				So(c.Float().Left, ShouldAlmostEqual, 100)
			})

			Convey("Leaving during the drag should keep the label", func() {
				c.OnPointerLeave()
				So(c.Float().Visible, ShouldBeTrue)

				Convey("Releasing should end the drag and hide it", func() {
					c.OnPointerUp()
					So(c.Drag().PointerDown, ShouldBeFalse)
					So(c.Float().Visible, ShouldBeFalse)
				})
			})
		})

		Convey("A secondary press should be ignored", func() {
			So(c.OnPointerDown(120, ButtonSecondary), ShouldBeFalse)
			So(c.Drag().PointerDown, ShouldBeFalse)
			So(media.seeks, ShouldBeEmpty)
		})

		Convey("Leaving without a drag should hide the label", func() {
			c.OnPointerEnter()
			c.OnPointerLeave()
			So(c.Drag().PointerOver, ShouldBeFalse)
			So(c.Float().Visible, ShouldBeFalse)
		})

		Convey("Moves outside the tracking scope should be dropped", func() {
			c.OnPointerMove(120)
			So(c.Float().Visible, ShouldBeFalse)
		})

		Convey("Seek errors should be logged and swallowed", func() {
			c, _, media, hook := newTestController(false)
			media.seekErr = errors.New("socket closed")

			So(func() { c.OnPointerDown(120, ButtonPrimary) }, ShouldNotPanic)
			So(hook.LastEntry(), ShouldNotBeNil)
			So(hook.LastEntry().Level, ShouldEqual, logrus.WarnLevel)
		})
	})

	Convey("Given a touch device", t, func() {
		c, _, media, _ := newTestController(true)

		Convey("Dragging should seek without showing a preview", func() {
			c.OnPointerEnter()
			c.OnPointerDown(120, ButtonPrimary)
			So(media.seeks, ShouldResemble, []float64{50})
			So(c.Float().Visible, ShouldBeFalse)
		})
	})
}

func TestOnKeyStep(t *testing.T) {
	Convey("Given a 100 second media and a 5 second step", t, func() {
		c, _, media, _ := newTestController(false)
		d := mo.Some(100.0)

		Convey("Forward should seek ahead exactly", func() {
			So(c.OnKeyStep(StepForward, 40, d), ShouldBeTrue)
			So(media.seeks, ShouldResemble, []float64{45})
			So(media.paused, ShouldEqual, 0)
		})

		Convey("Backward should seek behind exactly", func() {
			c.OnKeyStep(StepBackward, 40, d)
			So(media.seeks, ShouldResemble, []float64{35})
		})

		Convey("Home should seek to the start", func() {
			c.OnKeyStep(StepHome, 40, d)
			So(media.seeks, ShouldResemble, []float64{0})
		})

		Convey("Forward past the end should pause just before the end", func() {
			c.OnKeyStep(StepForward, 99, d)
			So(media.paused, ShouldEqual, 1)
			So(media.seeks, ShouldHaveLength, 1)
			So(media.seeks[0], ShouldAlmostEqual, 99.99)
		})

		Convey("End should pause just before the end", func() {
			c.OnKeyStep(StepEnd, 10, d)
			So(media.paused, ShouldEqual, 1)
			So(media.seeks[0], ShouldAlmostEqual, 99.99)
		})

		Convey("Backward before the start should take the defensive path", func() {
			c.OnKeyStep(StepBackward, 2, d)
			So(media.paused, ShouldEqual, 1)
			So(media.seeks[0], ShouldAlmostEqual, 99.99)
		})

		Convey("An overshoot with an unknown duration should not seek", func() {
			So(c.OnKeyStep(StepEnd, 10, mo.None[float64]()), ShouldBeTrue)
			So(media.seeks, ShouldBeEmpty)
			So(media.paused, ShouldEqual, 0)
		})

		Convey("A custom step size should be honoured", func() {
			c.options.SeekStep = 10
			c.OnKeyStep(StepForward, 40, d)
			So(media.seeks, ShouldResemble, []float64{50})
		})
	})
}
