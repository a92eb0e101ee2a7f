package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/seekscript/seekscript/internal/ui"
	"github.com/seekscript/seekscript/player"
	"github.com/seekscript/seekscript/rail"
	"github.com/seekscript/seekscript/style"
	"github.com/seekscript/seekscript/subtitle"
	"github.com/seekscript/seekscript/transcript"
	"github.com/seekscript/seekscript/util"
)

// Screen layout, in rows from the top of the padded view.
const (
	titleRow = iota
	floatRow
	railRow
	statusRow
	_
	headerRow
	panelRow
)

// footerRows is reserved below the panel for the search box and help.
const footerRows = 3

// playback caches what mpv reports through events so reads on the UI loop
// never wait on IPC.
type playback struct {
	player.Player
	duration mo.Option[float64]
}

func (p *playback) Duration() mo.Option[float64] {
	return p.duration
}

// statefulBubble encapsulates the application state, including component models and workflow tracking.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	keymap *statefulKeymap

	// components
	spinnerC spinner.Model
	inputC   textinput.Model
	helpC    help.Model
	panelC   *transcriptPanel

	ctx      context.Context
	media    *playback
	loader   *subtitle.Loader
	geometry *railGeometry
	rail     *rail.Controller
	engine   *transcript.Engine
	lang     mo.Option[string]

	current        float64
	paused         bool
	ended          bool
	buffer         mo.Option[rail.BufferReport]
	hoverRail      bool
	showTranscript bool

	lastError     error
	width, height int
	notifier      *ui.Model

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState transitions to a target state, recording the previous one unless it was transient.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains([]state{loadingState, searchState}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the application to its immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if s, ok := b.statesHistory.Pop(); ok {
		b.setState(s)
		return
	}
	b.setState(playerState)
}

// resize lays the rail and the panel out for the new terminal size.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = util.Max(width-x, 10)
	b.height = util.Max(height-y, panelRow+footerRows+1)

	b.geometry.left = paddingStyle.GetPaddingLeft()
	b.geometry.width = b.width
	b.helpC.Width = b.width
	b.inputC.Width = b.width - lipgloss.Width(b.inputC.Prompt) - 1

	b.panelC.resize(b.width, b.height-panelRow-footerRows)

	// Bars are widths in cells and must follow the new rail width.
	b.rail.OnTimeAdvance(b.current, b.media.Duration())
	if report, ok := b.buffer.Get(); ok {
		b.rail.OnBufferProgress(report)
	}
}

// newBubble performs a complete initialization of the application's primary UI model.
func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		keymap:         keymap,
		ctx:            context.Background(),
		media:          &playback{Player: options.Player},
		loader:         subtitle.NewLoader(options.Transcripts...),
		geometry:       &railGeometry{},
		showTranscript: options.ShowTranscript,
		notifier:       &ui.Model{},
		options:        options,
	}

	bubble.rail = rail.New(bubble.geometry, bubble.media, options.Rail)

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = options.SearchPlaceholder
	bubble.inputC.CharLimit = 120
	bubble.inputC.Prompt = "/ "

	bubble.panelC = newTranscriptPanel(80, 10)

	width, height := 80, 24
	if w, h, err := util.TerminalSize(); err == nil {
		width, height = w, h
	}
	bubble.resize(width, height)

	bubble.setState(loadingState)

	return &bubble
}
