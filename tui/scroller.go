package tui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
)

const scrollFPS = 60

// scrollFrameMsg advances the scroll animation by one frame.
type scrollFrameMsg struct{}

// scroller animates a vertical offset with a critically damped spring. A new
// target replaces the one in flight and keeps the current velocity.
type scroller struct {
	spring   harmonica.Spring
	pos, vel float64
	target   float64
	deadline time.Time
	running  bool
	now      func() time.Time
}

func newScroller() *scroller {
	return &scroller{now: time.Now}
}

// retarget starts moving towards top, arriving within roughly d.
func (s *scroller) retarget(top float64, d time.Duration) {
	if d <= 0 {
		d = time.Millisecond
	}

	// A critically damped spring settles within about 6/ω seconds.
	omega := 6 / d.Seconds()
	s.spring = harmonica.NewSpring(harmonica.FPS(scrollFPS), omega, 1)
	s.target = top
	s.deadline = s.now().Add(d)
}

// jump moves to top without animating.
func (s *scroller) jump(top float64) {
	s.pos, s.vel, s.target = top, 0, top
	s.deadline = time.Time{}
}

func (s *scroller) settled() bool {
	return math.Abs(s.pos-s.target) < 0.5 && math.Abs(s.vel) < 0.5
}

// cmd schedules the next frame unless one is pending or nothing moves.
func (s *scroller) cmd() tea.Cmd {
	if s.running || s.settled() {
		return nil
	}

	s.running = true
	return tea.Tick(time.Second/scrollFPS, func(time.Time) tea.Msg {
		return scrollFrameMsg{}
	})
}

// frame advances one step and returns the row to display.
func (s *scroller) frame() int {
	s.running = false

	if !s.now().Before(s.deadline) {
		s.pos, s.vel = s.target, 0
	} else {
		s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	}

	if s.settled() {
		s.pos, s.vel = s.target, 0
	}

	return s.row()
}

func (s *scroller) row() int {
	return int(math.Round(s.pos))
}
