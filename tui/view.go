package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
	"github.com/seekscript/seekscript/icon"
	"github.com/seekscript/seekscript/rail"
	"github.com/seekscript/seekscript/style"
	"github.com/seekscript/seekscript/timecode"
	"github.com/seekscript/seekscript/transcript"
	"github.com/seekscript/seekscript/util"
)

var (
	paddingStyle = lipgloss.NewStyle().Padding(1, 2)

	playedStyle = lipgloss.NewStyle().Foreground(style.PlayedColor)
	loadedStyle = lipgloss.NewStyle().Foreground(style.BufferedColor)
	emptyStyle  = lipgloss.NewStyle().Foreground(style.TrackColor)
	handleStyle = lipgloss.NewStyle().Foreground(style.HandleColor).Bold(true)
	floatStyle  = lipgloss.NewStyle().Foreground(style.Base).Background(style.PreviewColor)
)

const (
	handleGlyph = "●"
	barGlyph    = "━"
	emptyGlyph  = "─"
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case errorState:
		output = b.viewError()
	default:
		output = b.viewPlayer()
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewPlayer() string {
	lines := []string{
		b.viewTitle(),
		b.viewFloat(),
		b.viewRail(),
		b.viewStatus(),
		"",
	}

	switch {
	case b.state == loadingState:
		lines = append(lines, b.spinnerC.View()+" Loading transcript")
	case b.showTranscript && b.engine != nil:
		lines = append(lines, b.viewPanelHeader(), b.panelC.View())
	}

	if b.state == searchState {
		lines = append(lines, "", b.inputC.View())
	}

	return b.renderLines(b.options.ShowHelp, lines)
}

func (b *statefulBubble) viewTitle() string {
	state := icon.Get(icon.Play)
	if b.paused {
		state = icon.Get(icon.Pause)
	}

	title := style.Title(truncate.StringWithTail(b.options.Title, uint(util.Max(b.width-8, 1)), "…"))
	return title + " " + state
}

func (b *statefulBubble) viewFloat() string {
	label := b.rail.Float()
	if !label.Visible || label.Text == "" {
		return ""
	}

	text := floatStyle.Render(label.Text)
	width := lipgloss.Width(text)
	left := lo.Clamp(int(math.Round(label.Left))-width/2, 0, util.Max(b.width-width, 0))
	return strings.Repeat(" ", left) + text
}

func (b *statefulBubble) viewRail() string {
	return renderRail(b.rail.Bars(), b.geometry.width)
}

// renderRail draws the track one cell per unit: played, then buffered, then
// the remainder, with the handle on top.
func renderRail(bars rail.Bars, width int) string {
	if width <= 0 {
		return ""
	}

	played := lo.Clamp(int(math.Round(bars.Current)), 0, width)
	loaded := lo.Clamp(int(math.Round(bars.Loaded)), played, width)
	handle := lo.Clamp(int(math.Round(bars.HandleLeft)), 0, width-1)

	cells := make([]string, 0, width)
	for i := 0; i < width; i++ {
		switch {
		case i == handle:
			cells = append(cells, handleStyle.Render(handleGlyph))
		case i < played:
			cells = append(cells, playedStyle.Render(barGlyph))
		case i < loaded:
			cells = append(cells, loadedStyle.Render(barGlyph))
		default:
			cells = append(cells, emptyStyle.Render(emptyGlyph))
		}
	}
	return strings.Join(cells, "")
}

func (b *statefulBubble) viewStatus() string {
	slider := b.rail.Slider()

	position := slider.Text
	if position == "" {
		position = timecode.Format(b.current, false)
	}

	total := "--:--"
	if d, ok := b.media.Duration().Get(); ok {
		total = timecode.ForDuration(d, d)
	}

	status := fmt.Sprintf("%s / %s", position, total)
	if b.ended {
		status += " " + style.Fg(style.SuccessColor)(icon.Get(icon.Success)+" ended")
	}
	return status + "  " + style.Faint(slider.Label)
}

func (b *statefulBubble) viewPanelHeader() string {
	header := b.options.PanelLabel
	if lang, ok := b.lang.Get(); ok {
		header += " · " + transcript.LanguageName(lang)
	}
	return icon.Get(icon.Transcript) + " " + style.Bold(header)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)
	errorBody := errorStyle.Render(b.lastError.Error())
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	l := strings.Join(lines, "\n")
	if addHelp {
		h := lipgloss.Height(l)
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
