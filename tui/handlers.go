package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/seekscript/seekscript/internal/ui"
	"github.com/seekscript/seekscript/log"
	"github.com/seekscript/seekscript/player"
	"github.com/seekscript/seekscript/rail"
	"github.com/seekscript/seekscript/transcript"
	"github.com/seekscript/seekscript/util"
)

// playerEventMsg carries an mpv property change into the update loop.
type playerEventMsg player.Event

// tracksLoadedMsg is the "cues loaded" signal of the subtitle loader.
type tracksLoadedMsg struct {
	tracks []*transcript.Track
	err    error
}

// playerExitMsg reports that the playback session is over.
type playerExitMsg struct{}

func (b *statefulBubble) waitForTracks() tea.Cmd {
	b.loader.Start(b.ctx)
	return func() tea.Msg {
		tracks := <-b.loader.Loaded()
		return tracksLoadedMsg{tracks: tracks, err: b.loader.Err()}
	}
}

func (b *statefulBubble) waitForPlayerExit() tea.Cmd {
	return func() tea.Msg {
		<-b.media.Wait()
		return playerExitMsg{}
	}
}

func (b *statefulBubble) onTracksLoaded(msg tracksLoadedMsg) tea.Cmd {
	b.setState(playerState)

	if msg.err != nil && len(msg.tracks) == 0 {
		b.raiseError(msg.err)
		return nil
	}

	engine, lang := transcript.Build(msg.tracks, b.media, b.panelC, b.options.Transcript)
	if engine == nil {
		log.Info("no transcript track, skipping the transcript")
		b.showTranscript = false
		return ui.Notify("No transcript")
	}

	b.engine = engine
	b.lang = lang
	b.engine.Render()
	if b.current > 0 {
		b.engine.OnTimeAdvance(b.current)
	}
	b.refreshPanel()

	log.Infof("transcript ready: %s", util.Quantify(len(engine.Track().Cues), "cue", "cues"))

	if msg.err != nil {
		return ui.Notify("Some transcripts failed to load")
	}
	return nil
}

// onPlayerEvent feeds mpv notifications to the rail and the transcript.
func (b *statefulBubble) onPlayerEvent(e player.Event) {
	switch e.Name {
	case player.PropTimePos:
		t, ok := e.Float().Get()
		if !ok {
			return
		}

		b.current = t
		b.rail.OnTimeAdvance(t, b.media.Duration())
		if b.engine != nil {
			b.engine.OnTimeAdvance(t)
			b.refreshPanel()
		}
	case player.PropDuration:
		b.media.duration = e.Float()
		b.rail.OnTimeAdvance(b.current, b.media.Duration())
	case player.PropCacheTime:
		end, ok := e.Float().Get()
		if !ok {
			return
		}

		// mpv reports the readahead end; the buffered range starts at the playhead.
		report := rail.BufferReport{
			Ranges:   []rail.Range{{Start: b.current, End: end}},
			Duration: b.media.Duration(),
		}
		b.buffer = mo.Some(report)
		b.rail.OnBufferProgress(report)
		b.rail.OnTimeAdvance(b.current, b.media.Duration())
	case player.PropPause:
		b.paused = e.Bool()
	case player.PropEOFReached:
		b.ended = e.Bool()
		if b.ended {
			b.paused = true
		}
	default:
		log.Tracef("mpv event %s", e.Name)
	}
}

// activate seeks to the cue under the panel cursor.
func (b *statefulBubble) activate(index int) tea.Cmd {
	if b.engine == nil {
		return nil
	}

	matched := b.engine.Activate(index)
	b.refreshPanel()
	if !matched {
		return ui.Notify("No match")
	}
	return nil
}

func (b *statefulBubble) search(query string) tea.Cmd {
	if b.engine == nil || query == "" {
		return nil
	}

	matched := b.engine.Search(query)
	b.refreshPanel()
	if !matched {
		return ui.Notify("No match for " + query)
	}

	if i, ok := b.engine.State().SearchMatch.Get(); ok {
		b.panelC.cursor = i
		b.engine.ScrollTo(i, 0)
		b.refreshPanel()
	}
	return nil
}

func (b *statefulBubble) step(step rail.Step) {
	b.rail.OnKeyStep(step, b.current, b.media.Duration())
}

func (b *statefulBubble) togglePause() tea.Cmd {
	if err := b.media.TogglePause(); err != nil {
		log.Warnf("toggle pause: %v", err)
		return ui.Notify("Player not responding")
	}
	return nil
}

func (b *statefulBubble) refreshPanel() {
	if b.engine != nil {
		b.panelC.refresh(b.engine.Items())
	}
}

func (b *statefulBubble) quit() tea.Cmd {
	if err := b.media.Close(); err != nil {
		log.Warnf("close player: %v", err)
	}
	return tea.Quit
}
