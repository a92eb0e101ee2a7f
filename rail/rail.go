// Package rail implements the seek rail: the loaded/current bars, the draggable
// handle and the floating time preview, translating pointer and keyboard input
// into seek requests against the playback engine.
package rail

import (
	"io"
	"math"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/seekscript/seekscript/timecode"
	"github.com/sirupsen/logrus"
)

// DeadZone is the leading fraction of the rail that snaps to the very start.
const DeadZone = 0.02

// NearEnd is subtracted from the duration when a key seek overshoots.
// Seeking to the exact duration makes some engines fire "ended" immediately.
const NearEnd = 0.01

// Geometry reports the rendered size of the rail. Every computation queries it
// again because the surface can be resized between events.
type Geometry interface {
	TrackWidth() float64
	HandleWidth() float64
	LeftEdge() float64
}

// Media is the part of the playback engine the rail drives.
type Media interface {
	Duration() mo.Option[float64]
	Pause() error
	SetCurrentTime(seconds float64) error
}

// Button identifies the pointer button of a press.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// Options configures a Controller.
type Options struct {
	// SeekStep is the distance in seconds of a backward/forward key step.
	SeekStep float64
	// ProgressText labels the handle for assistive technology.
	ProgressText string
	// Touch disables the hover time preview.
	Touch  bool
	Logger logrus.FieldLogger
}

// DefaultOptions mirrors the factory configuration.
func DefaultOptions() Options {
	return Options{
		SeekStep:     5,
		ProgressText: "Seek bar",
	}
}

// Bars is a snapshot of the rail widths and the handle position.
type Bars struct {
	Loaded     float64
	Current    float64
	HandleLeft float64
}

// FloatLabel is the time preview that follows the pointer.
type FloatLabel struct {
	Visible bool
	Left    float64
	Text    string
}

// Slider is the accessible state exposed on the handle.
type Slider struct {
	Now   float64
	Text  string
	Min   float64
	Max   float64
	Label string
}

// DragState tracks the pointer relative to the rail.
type DragState struct {
	PointerDown bool
	PointerOver bool
}

// Controller owns the rail state. It is not safe for concurrent use; all
// handlers are expected to run on the UI event loop.
type Controller struct {
	geometry Geometry
	media    Media
	options  Options
	logger   logrus.FieldLogger

	bars   Bars
	float  FloatLabel
	slider Slider
	drag   DragState
}

// New creates a Controller bound to a rail surface and a playback engine.
func New(geometry Geometry, media Media, options Options) *Controller {
	logger := options.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	return &Controller{
		geometry: geometry,
		media:    media,
		options:  options,
		logger:   logger,
		slider:   Slider{Label: options.ProgressText},
	}
}

// Bars returns the current bar widths and handle offset.
func (c *Controller) Bars() Bars { return c.bars }

// Float returns the floating time label.
func (c *Controller) Float() FloatLabel { return c.float }

// Slider returns the accessible handle state.
func (c *Controller) Slider() Slider { return c.slider }

// Drag returns the pointer state.
func (c *Controller) Drag() DragState { return c.drag }

// OnTimeAdvance moves the current bar and the handle to the playback position
// and refreshes the accessible state. Unknown or zero durations are ignored.
func (c *Controller) OnTimeAdvance(current float64, duration mo.Option[float64]) {
	d, ok := knownDuration(duration)
	if !ok {
		return
	}

	width := c.geometry.TrackWidth() * current / d
	c.bars.Current = width
	c.bars.HandleLeft = width - c.geometry.HandleWidth()/2

	c.slider = Slider{
		Now:   current,
		Text:  timecode.ForDuration(current, d),
		Min:   0,
		Max:   d,
		Label: c.options.ProgressText,
	}
}

// OnPointerEnter marks the pointer as hovering the rail.
func (c *Controller) OnPointerEnter() {
	c.drag.PointerOver = true
	if !c.options.Touch {
		c.float.Visible = true
	}
}

// OnPointerLeave clears the hover state. An active drag keeps the label.
func (c *Controller) OnPointerLeave() {
	c.drag.PointerOver = false
	if !c.drag.PointerDown {
		c.float.Visible = false
	}
}

// OnPointerDown starts a drag on a primary-button press and seeks to the
// pointer. It reports whether the press was consumed.
func (c *Controller) OnPointerDown(x float64, button Button) bool {
	if button != ButtonPrimary {
		return false
	}

	c.drag.PointerDown = true
	c.preview(x)
	return true
}

// OnPointerMove updates the preview while hovering and seeks while dragging.
// Moves outside the tracking scope (neither hovering nor dragging) are dropped.
func (c *Controller) OnPointerMove(x float64) {
	if !c.drag.PointerDown && !c.drag.PointerOver {
		return
	}
	c.preview(x)
}

// OnPointerUp ends the drag and hides the label.
func (c *Controller) OnPointerUp() {
	if !c.drag.PointerDown {
		return
	}
	c.drag.PointerDown = false
	c.float.Visible = false
}

// PreviewTime maps a pointer position relative to the rail to a media time.
// It returns None when the position lies outside the rail or the duration is unknown.
func PreviewTime(pos, trackWidth float64, duration mo.Option[float64]) mo.Option[float64] {
	d, ok := knownDuration(duration)
	if !ok || trackWidth <= 0 || pos < 0 || pos > trackWidth {
		return mo.None[float64]()
	}

	fraction := pos / trackWidth
	if fraction <= DeadZone {
		return mo.Some(0.0)
	}
	return mo.Some(fraction * d)
}

func (c *Controller) preview(x float64) {
	pos := x - c.geometry.LeftEdge()
	duration := c.media.Duration()

	t, ok := PreviewTime(pos, c.geometry.TrackWidth(), duration).Get()
	if !ok {
		return
	}

	if c.drag.PointerDown {
		if err := c.media.SetCurrentTime(t); err != nil {
			c.logger.Warnf("drag seek to %.2f: %v", t, err)
		}
	}

	if !c.options.Touch {
		c.float = FloatLabel{
			Visible: true,
			Left:    pos,
			Text:    timecode.ForDuration(t, duration.OrEmpty()),
		}
	}
}

// OnBufferProgress resizes the loaded bar from a buffering report. Reports
// without a usable ratio leave the previous width untouched.
func (c *Controller) OnBufferProgress(report BufferReport) {
	ratio, ok := report.Ratio().Get()
	if !ok {
		return
	}

	c.bars.Loaded = c.geometry.TrackWidth() * lo.Clamp(ratio, 0, 1)
}

func knownDuration(duration mo.Option[float64]) (float64, bool) {
	d, ok := duration.Get()
	if !ok || d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, false
	}
	return d, true
}
