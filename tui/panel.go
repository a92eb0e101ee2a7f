package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/seekscript/seekscript/style"
	"github.com/seekscript/seekscript/transcript"
	"github.com/seekscript/seekscript/util"
)

const (
	cursorMarker = "▌ "
	plainMarker  = "  "
)

var (
	activeCueStyle  = lipgloss.NewStyle().Foreground(style.ActiveCueColor).Bold(true)
	hitCueStyle     = lipgloss.NewStyle().Foreground(style.Base).Background(style.SearchHitColor)
	focusedCueStyle = lipgloss.NewStyle().Underline(true)
	normalCueStyle  = lipgloss.NewStyle().Foreground(style.CueColor)
	cursorStyle     = lipgloss.NewStyle().Foreground(style.CursorColor)
)

// transcriptPanel renders cue items into a viewport. It implements
// transcript.Panel; offsets are content rows.
type transcriptPanel struct {
	viewport viewport.Model
	scroller *scroller

	items    []transcript.Item
	offsets  []int // first row of each item
	owners   []int // item index of each row
	cursor   int
	anchored bool
	width    int
}

func newTranscriptPanel(width, height int) *transcriptPanel {
	p := &transcriptPanel{
		viewport: viewport.New(width, height),
		scroller: newScroller(),
	}
	p.resize(width, height)
	return p
}

func (p *transcriptPanel) Anchor() {
	p.anchored = true
}

func (p *transcriptPanel) Mount(items []transcript.Item) {
	p.items = items
	p.cursor = lo.Clamp(p.cursor, 0, util.Max(len(items)-1, 0))
	p.layout()
}

func (p *transcriptPanel) Offset(index int) float64 {
	if index < 0 || index >= len(p.offsets) {
		return 0
	}
	return float64(p.offsets[index])
}

func (p *transcriptPanel) AnimateScroll(top float64, d time.Duration) {
	maxTop := float64(util.Max(len(p.owners)-p.viewport.Height, 0))
	p.scroller.retarget(lo.Clamp(top, 0, maxTop), d)
}

// refresh re-renders after the engine changed item marks.
func (p *transcriptPanel) refresh(items []transcript.Item) {
	p.items = items
	p.layout()
}

func (p *transcriptPanel) resize(width, height int) {
	p.width = util.Max(width, 10)
	p.viewport.Width = p.width
	p.viewport.Height = util.Max(height, 1)
	p.layout()
}

// frame applies one scroll animation step.
func (p *transcriptPanel) frame() {
	p.viewport.SetYOffset(p.scroller.frame())
}

// scrollBy moves the view manually, cancelling any animation.
func (p *transcriptPanel) scrollBy(rows int) {
	p.viewport.SetYOffset(p.viewport.YOffset + rows)
	p.scroller.jump(float64(p.viewport.YOffset))
}

// moveCursor moves the selection and keeps it in view.
func (p *transcriptPanel) moveCursor(delta int) {
	if len(p.items) == 0 {
		return
	}

	p.cursor = lo.Clamp(p.cursor+delta, 0, len(p.items)-1)
	p.layout()

	top := p.offsets[p.cursor]
	switch {
	case top < p.viewport.YOffset:
		p.scrollBy(top - p.viewport.YOffset)
	case top >= p.viewport.YOffset+p.viewport.Height:
		p.scrollBy(top - p.viewport.YOffset - p.viewport.Height + 1)
	}
}

// itemAt maps a visible row to the cue rendered there.
func (p *transcriptPanel) itemAt(row int) (int, bool) {
	line := p.viewport.YOffset + row
	if row < 0 || row >= p.viewport.Height || line < 0 || line >= len(p.owners) {
		return 0, false
	}
	return p.owners[line], true
}

func (p *transcriptPanel) layout() {
	var (
		b    strings.Builder
		rows int
	)

	p.offsets = make([]int, len(p.items))
	p.owners = p.owners[:0]

	textWidth := util.Max(p.width-len([]rune(cursorMarker)), 1)
	for i, item := range p.items {
		p.offsets[i] = rows

		marker := plainMarker
		if i == p.cursor {
			marker = cursorStyle.Render(cursorMarker)
		}

		for _, line := range strings.Split(wordwrap.String(item.Text, textWidth), "\n") {
			if rows > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(marker)
			b.WriteString(cueStyle(item).Render(line))
			p.owners = append(p.owners, i)
			rows++
		}
	}

	p.viewport.SetContent(b.String())
}

func cueStyle(item transcript.Item) lipgloss.Style {
	s := normalCueStyle
	switch {
	case item.Hit:
		s = hitCueStyle
	case item.Active:
		s = activeCueStyle
	}

	if item.Focused {
		s = s.Inherit(focusedCueStyle)
	}
	return s
}

func (p *transcriptPanel) View() string {
	return p.viewport.View()
}
