// Package transcript keeps a timed transcript in step with the playback clock:
// it highlights the cues under the playhead, scrolls the panel to them and
// turns text searches into seeks.
package transcript

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
)

// DefaultScrollDuration is used when neither the caller nor the options give one.
const DefaultScrollDuration = 600 * time.Millisecond

// Policy selects how cues are highlighted and searched. The two policies have
// visibly different behavior and are kept side by side.
type Policy int

const (
	// PolicyMulti highlights every cue under the playhead, auto-scrolls to newly
	// active cues and searches with case-insensitive regular expressions.
	PolicyMulti Policy = iota
	// PolicySingle highlights the first cue under the playhead only and
	// searches for a literal substring, stopping at the first match.
	PolicySingle
)

func (p Policy) String() string {
	switch p {
	case PolicyMulti:
		return "multi"
	case PolicySingle:
		return "single"
	default:
		return "unknown"
	}
}

// ParsePolicy resolves a policy by name.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "multi", "":
		return PolicyMulti, nil
	case "single":
		return PolicySingle, nil
	default:
		return 0, fmt.Errorf("unknown transcript policy %q", name)
	}
}

// Seeker is the part of the playback engine a search drives.
type Seeker interface {
	Play() error
	Pause() error
	SetCurrentTime(seconds float64) error
}

// Panel is the scrollable surface the cues are rendered into.
type Panel interface {
	// Anchor makes offsets reported by Offset relative to the panel itself.
	// It is called once, before the first Mount.
	Anchor()
	// Mount receives the rendered items.
	Mount(items []Item)
	// Offset returns the position of a cue within the panel content.
	Offset(index int) float64
	// AnimateScroll brings top to the top of the panel. A new request replaces
	// any animation in flight.
	AnimateScroll(top float64, d time.Duration)
}

// Options configures an Engine.
type Options struct {
	Policy         Policy
	AutoScroll     bool
	ScrollDuration time.Duration
	Logger         logrus.FieldLogger
}

// DefaultOptions mirrors the factory configuration.
func DefaultOptions() Options {
	return Options{
		Policy:         PolicyMulti,
		AutoScroll:     true,
		ScrollDuration: DefaultScrollDuration,
	}
}

// Item is the renderable projection of a cue.
type Item struct {
	Index   int
	Text    string
	Active  bool
	Hit     bool
	Focused bool
}

// SyncState is the engine's view of the transcript.
type SyncState struct {
	Active          mo.Option[int]
	LastHighlighted mo.Option[int]
	SearchMatch     mo.Option[int]
}

// Engine is the transcript context of one player. It is not safe for
// concurrent use; time advances must be delivered one at a time.
type Engine struct {
	track   *Track
	seeker  Seeker
	panel   Panel
	options Options
	logger  logrus.FieldLogger

	state    SyncState
	items    []Item
	rendered bool
}

// New creates an engine over a selected track. A nil panel disables rendering
// and scrolling, which is what headless callers want.
func New(track *Track, seeker Seeker, panel Panel, options Options) *Engine {
	logger := options.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	if panel == nil {
		panel = nopPanel{}
	}

	if track == nil {
		track = &Track{}
	}

	items := make([]Item, len(track.Cues))
	for i, cue := range track.Cues {
		items[i] = Item{Index: i, Text: cue.Text}
	}

	return &Engine{
		track:   track,
		seeker:  seeker,
		panel:   panel,
		options: options,
		logger:  logger,
		items:   items,
	}
}

// Build selects the transcript track among the available ones and creates
// its engine. It returns nil when there is no track at all, in which case the
// transcript is skipped entirely.
func Build(tracks []*Track, seeker Seeker, panel Panel, options Options) (*Engine, mo.Option[string]) {
	track, lang := SelectTrack(tracks)
	if track == nil {
		return nil, lang
	}

	e := New(track, seeker, panel, options)
	e.logger.Debugf("transcript track %q selected with %d cues", track.Lang, len(track.Cues))
	return e, lang
}

// Track returns the engine's track.
func (e *Engine) Track() *Track { return e.track }

// State returns the current sync state.
func (e *Engine) State() SyncState { return e.state }

// Policy returns the active policy.
func (e *Engine) Policy() Policy { return e.options.Policy }

// Items returns a snapshot of the rendered items.
func (e *Engine) Items() []Item {
	out := make([]Item, len(e.items))
	copy(out, e.items)
	return out
}

// Render mounts the cue items into the panel. Only the first call touches the
// panel; later calls return the same items without mounting them again.
func (e *Engine) Render() []Item {
	if !e.rendered {
		e.panel.Anchor()
		e.panel.Mount(e.Items())
		e.rendered = true
	}
	return e.Items()
}

// OnTimeAdvance updates the highlighted cues for the playback position.
func (e *Engine) OnTimeAdvance(t float64) {
	switch e.options.Policy {
	case PolicySingle:
		e.highlightFirst(t)
	default:
		e.highlightAll(t)
	}
}

func (e *Engine) highlightAll(t float64) {
	active := mo.None[int]()

	for i, cue := range e.track.Cues {
		if !cue.Contains(t) {
			e.items[i].Active = false
			continue
		}

		if active.IsAbsent() {
			active = mo.Some(i)
		}

		newly := !e.items[i].Active
		e.items[i].Active = true
		e.state.LastHighlighted = mo.Some(i)

		if newly {
			e.ScrollTo(i, 0)
		}
	}

	e.state.Active = active
}

func (e *Engine) highlightFirst(t float64) {
	for i, cue := range e.track.Cues {
		if !cue.Contains(t) {
			continue
		}

		if i > 0 {
			e.items[i-1].Active = false
		}
		if m, ok := e.state.SearchMatch.Get(); ok {
			e.items[m].Active = false
		}

		e.items[i].Active = true
		e.state.Active = mo.Some(i)
		e.state.LastHighlighted = mo.Some(i)
		return
	}
}

// ScrollTo animates the panel to a cue. A zero duration uses the configured
// default. Nothing happens when auto-scroll is off.
func (e *Engine) ScrollTo(index int, d time.Duration) {
	if !e.options.AutoScroll || index < 0 || index >= len(e.items) {
		return
	}

	if d <= 0 {
		d = e.options.ScrollDuration
	}
	if d <= 0 {
		d = DefaultScrollDuration
	}

	top := e.panel.Offset(index)
	e.logger.Tracef("scroll to cue %d at %.1f", index, top)
	e.panel.AnimateScroll(top, d)
}

// seekTo plays and pauses before seeking so engines that refuse to seek
// before first playback initialize at the target.
func (e *Engine) seekTo(t float64) {
	if e.seeker == nil {
		return
	}

	if err := e.seeker.Play(); err != nil {
		e.logger.Warnf("search play: %v", err)
	}
	if err := e.seeker.Pause(); err != nil {
		e.logger.Warnf("search pause: %v", err)
	}
	if err := e.seeker.SetCurrentTime(t); err != nil {
		e.logger.Warnf("search seek to %.2f: %v", t, err)
	}
}

type nopPanel struct{}

func (nopPanel) Anchor()                              {}
func (nopPanel) Mount([]Item)                         {}
func (nopPanel) Offset(int) float64                   { return 0 }
func (nopPanel) AnimateScroll(float64, time.Duration) {}
