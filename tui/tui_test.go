package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/mo"
	"github.com/seekscript/seekscript/internal/ui"
	"github.com/seekscript/seekscript/player"
	"github.com/seekscript/seekscript/rail"
	"github.com/seekscript/seekscript/transcript"
	. "github.com/smartystreets/goconvey/convey"
)

type fakePlayer struct {
	calls  []string
	seeks  []float64
	closed bool
	exited chan struct{}
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{exited: make(chan struct{})}
}

func (p *fakePlayer) Open(string, string) error { return nil }
func (p *fakePlayer) Play() error               { p.calls = append(p.calls, "play"); return nil }
func (p *fakePlayer) Pause() error              { p.calls = append(p.calls, "pause"); return nil }
func (p *fakePlayer) TogglePause() error        { p.calls = append(p.calls, "toggle"); return nil }
func (p *fakePlayer) SetCurrentTime(t float64) error {
	p.calls = append(p.calls, "seek")
	p.seeks = append(p.seeks, t)
	return nil
}
func (p *fakePlayer) CurrentTime() (float64, error) { return 0, nil }
func (p *fakePlayer) Duration() mo.Option[float64]  { return mo.None[float64]() }
func (p *fakePlayer) Paused() (bool, error)         { return false, nil }
func (p *fakePlayer) IsRunning() bool               { return true }
func (p *fakePlayer) Close() error                  { p.closed = true; return nil }
func (p *fakePlayer) Socket() string                { return "" }
func (p *fakePlayer) Wait() <-chan struct{}         { return p.exited }

func helloWorld() *transcript.Track {
	return &transcript.Track{
		Lang: "en-x-transcript",
		Cues: []transcript.Cue{
			{Index: 0, Start: 0, Stop: 2, Text: "hello"},
			{Index: 1, Start: 2, Stop: 5, Text: "world"},
		},
	}
}

func newTestBubble() (*statefulBubble, *fakePlayer) {
	p := newFakePlayer()
	b := newBubble(&Options{
		Title:             "talk.mp4",
		Player:            p,
		Rail:              rail.DefaultOptions(),
		Transcript:        transcript.DefaultOptions(),
		ShowTranscript:    true,
		PanelLabel:        "Seekable text script",
		SearchPlaceholder: "Search script",
	})
	b.resize(84, 24)
	return b, p
}

func send(b *statefulBubble, msgs ...tea.Msg) {
	for _, msg := range msgs {
		b.Update(msg)
	}
}

func event(name string, data interface{}) playerEventMsg {
	return playerEventMsg(player.Event{Name: name, Data: data})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBubbleRail(t *testing.T) {
	Convey("Given a bubble playing a 100 second media", t, func() {
		b, p := newTestBubble()
		send(b, event(player.PropDuration, 100.0), event(player.PropTimePos, 50.0))

		Convey("The rail should be laid out below the padding", func() {
			So(b.geometry.left, ShouldEqual, 2)
			So(b.geometry.width, ShouldEqual, 80)
		})

		Convey("Time events should move the current bar", func() {
			So(b.rail.Bars().Current, ShouldEqual, 40)
			So(b.rail.Slider().Text, ShouldEqual, "00:50")
		})

		Convey("Cache events should move the loaded bar", func() {
			send(b, event(player.PropCacheTime, 75.0))
			So(b.rail.Bars().Loaded, ShouldEqual, 60)
			So(b.rail.Bars().Current, ShouldEqual, 40)

			Convey("And survive a resize", func() {
				b.resize(44, 24)
				So(b.rail.Bars().Loaded, ShouldEqual, 30)
				So(b.rail.Bars().Current, ShouldEqual, 20)
			})
		})

		Convey("Arrow keys should step by the configured amount", func() {
			send(b, tea.KeyMsg{Type: tea.KeyRight})
			So(p.seeks, ShouldResemble, []float64{55})

			send(b, tea.KeyMsg{Type: tea.KeyLeft})
			So(p.seeks, ShouldResemble, []float64{55, 45})
		})

		Convey("Shift+right should land just before the end, paused", func() {
			send(b, tea.KeyMsg{Type: tea.KeyShiftRight})
			So(p.calls, ShouldResemble, []string{"pause", "seek"})
			So(p.seeks[0], ShouldAlmostEqual, 100-rail.NearEnd)
		})

		Convey("Space should toggle playback", func() {
			send(b, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			So(p.calls, ShouldResemble, []string{"toggle"})
		})

		Convey("Pause events should be reflected", func() {
			send(b, event(player.PropPause, true))
			So(b.paused, ShouldBeTrue)
		})

		Convey("A click on the rail should seek to the clicked cell", func() {
			send(b, tea.MouseMsg{X: 2 + 40, Y: 1 + railRow, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
			So(p.seeks, ShouldHaveLength, 1)
			So(p.seeks[0], ShouldAlmostEqual, 40.5/80*100)
			So(b.rail.Drag().PointerDown, ShouldBeTrue)

			Convey("Dragging should keep seeking until release", func() {
				send(b, tea.MouseMsg{X: 2 + 60, Y: 1 + railRow, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
				So(p.seeks, ShouldHaveLength, 2)

				send(b, tea.MouseMsg{X: 2 + 60, Y: 1 + railRow, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
				So(b.rail.Drag().PointerDown, ShouldBeFalse)

				send(b, tea.MouseMsg{X: 2 + 70, Y: 1 + railRow, Action: tea.MouseActionMotion})
				So(p.seeks, ShouldHaveLength, 2)
			})
		})

		Convey("Hovering should show the time label without seeking", func() {
			send(b, tea.MouseMsg{X: 2 + 20, Y: 1 + railRow, Action: tea.MouseActionMotion})
			So(b.rail.Float().Visible, ShouldBeTrue)
			So(b.rail.Float().Text, ShouldEqual, "00:25")
			So(p.seeks, ShouldBeEmpty)

			send(b, tea.MouseMsg{X: 2 + 20, Y: 1 + statusRow, Action: tea.MouseActionMotion})
			So(b.rail.Float().Visible, ShouldBeFalse)
		})

		Convey("The player going away should quit", func() {
			_, cmd := b.Update(playerExitMsg{})
			So(cmd, ShouldNotBeNil)
			So(p.closed, ShouldBeTrue)
		})
	})
}

func TestBubbleTranscript(t *testing.T) {
	Convey("Given a bubble waiting for its transcript", t, func() {
		b, p := newTestBubble()
		So(b.state, ShouldEqual, loadingState)

		Convey("Without tracks the transcript should be skipped", func() {
			send(b, tracksLoadedMsg{})
			So(b.state, ShouldEqual, playerState)
			So(b.engine, ShouldBeNil)
			So(b.showTranscript, ShouldBeFalse)
		})

		Convey("A failed load should show the error", func() {
			send(b, tracksLoadedMsg{err: errors.New("talk.vtt: boom")})
			So(b.state, ShouldEqual, errorState)

			send(b, tea.KeyMsg{Type: tea.KeyEsc})
			So(b.state, ShouldEqual, playerState)
		})

		Convey("Once the cues are loaded", func() {
			send(b, event(player.PropDuration, 5.0), tracksLoadedMsg{tracks: []*transcript.Track{helloWorld()}})
			So(b.state, ShouldEqual, playerState)
			So(b.engine, ShouldNotBeNil)
			So(b.lang.MustGet(), ShouldEqual, "en")
			So(b.panelC.items, ShouldHaveLength, 2)

			Convey("Time events should highlight the current cue", func() {
				send(b, event(player.PropTimePos, 3.0))
				So(b.panelC.items[1].Active, ShouldBeTrue)
				So(b.panelC.items[0].Active, ShouldBeFalse)
			})

			Convey("Searching should seek to the first match", func() {
				send(b, runes("/"))
				So(b.state, ShouldEqual, searchState)

				send(b, runes("world"), tea.KeyMsg{Type: tea.KeyEnter})
				So(b.state, ShouldEqual, playerState)
				So(p.calls, ShouldResemble, []string{"play", "pause", "seek"})
				So(p.seeks, ShouldResemble, []float64{2})
				So(b.panelC.items[1].Hit, ShouldBeTrue)
				So(b.panelC.cursor, ShouldEqual, 1)
			})

			Convey("Searching without a match should not seek", func() {
				send(b, runes("/"), runes("xyz"), tea.KeyMsg{Type: tea.KeyEnter})
				So(p.seeks, ShouldBeEmpty)
				So(b.search("xyz")(), ShouldEqual, ui.NotificationMsg("No match for xyz"))
			})

			Convey("Enter should seek to the cue under the cursor", func() {
				send(b, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
				So(p.seeks, ShouldResemble, []float64{2})
			})

			Convey("Clicking a line should seek to its cue", func() {
				send(b, tea.MouseMsg{X: 5, Y: 1 + panelRow, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
				So(p.seeks, ShouldResemble, []float64{0})
			})

			Convey("t should toggle the panel", func() {
				send(b, runes("t"))
				So(b.showTranscript, ShouldBeFalse)
				So(b.View(), ShouldNotContainSubstring, "hello")

				send(b, runes("t"))
				So(b.showTranscript, ShouldBeTrue)
				So(b.View(), ShouldContainSubstring, "hello")
			})
		})
	})
}

func TestPanel(t *testing.T) {
	Convey("Given a narrow panel", t, func() {
		p := newTranscriptPanel(20, 3)
		p.Anchor()
		p.Mount([]transcript.Item{
			{Index: 0, Text: "hello"},
			{Index: 1, Text: "aaaa bbbb cccc dddd eeee"},
			{Index: 2, Text: "end"},
		})

		Convey("Wrapped items should shift the offsets below them", func() {
			So(p.Offset(0), ShouldEqual, 0)
			So(p.Offset(1), ShouldEqual, 1)
			So(p.Offset(2), ShouldEqual, 3)
			So(p.Offset(9), ShouldEqual, 0)
		})

		Convey("Rows should map back to items", func() {
			index, ok := p.itemAt(2)
			So(ok, ShouldBeTrue)
			So(index, ShouldEqual, 1)

			_, ok = p.itemAt(3)
			So(ok, ShouldBeFalse)
		})

		Convey("Scroll targets should stay within the content", func() {
			p.AnimateScroll(3, 100*time.Millisecond)
			So(p.scroller.target, ShouldEqual, 1)
		})

		Convey("Moving the cursor past the view should scroll", func() {
			p.moveCursor(2)
			So(p.cursor, ShouldEqual, 2)
			So(p.viewport.YOffset, ShouldEqual, 1)
		})
	})
}

func TestScroller(t *testing.T) {
	Convey("Given a scroller on a fake clock", t, func() {
		now := time.Unix(0, 0)
		s := newScroller()
		s.now = func() time.Time { return now }

		Convey("It should not tick while settled", func() {
			So(s.cmd(), ShouldBeNil)
		})

		Convey("A new target should animate towards it", func() {
			s.retarget(10, 100*time.Millisecond)
			So(s.cmd(), ShouldNotBeNil)
			So(s.cmd(), ShouldBeNil)

			first := s.frame()
			So(first, ShouldBeBetweenOrEqual, 0, 10)

			Convey("Retargeting mid-flight should win", func() {
				s.retarget(4, 100*time.Millisecond)
				now = now.Add(time.Second)
				So(s.frame(), ShouldEqual, 4)
				So(s.cmd(), ShouldBeNil)
			})

			Convey("It should land on the target by the deadline", func() {
				now = now.Add(100 * time.Millisecond)
				So(s.frame(), ShouldEqual, 10)
				So(s.settled(), ShouldBeTrue)
			})
		})
	})
}

func TestRenderRail(t *testing.T) {
	Convey("renderRail", t, func() {
		out := renderRail(rail.Bars{Current: 4, Loaded: 6, HandleLeft: 3.5}, 10)
		So(lipgloss.Width(out), ShouldEqual, 10)
		So(out, ShouldContainSubstring, handleGlyph)

		So(renderRail(rail.Bars{}, 0), ShouldBeEmpty)
	})
}
