package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/seekscript/seekscript/player"
	"github.com/seekscript/seekscript/rail"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := b.update(msg)

	// Any handler may have retargeted the scroll animation.
	return model, tea.Batch(cmd, b.panelC.scroller.cmd())
}

func (b *statefulBubble) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Notifications (ui.NotificationMsg and ui.ClearNotificationMsg)
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
		return b, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, cmd
	case playerEventMsg:
		b.onPlayerEvent(player.Event(msg))
		return b, cmd
	case playerExitMsg:
		return b, b.quit()
	case tracksLoadedMsg:
		return b, tea.Batch(cmd, b.onTracksLoaded(msg))
	case scrollFrameMsg:
		b.panelC.frame()
		return b, cmd
	case tea.MouseMsg:
		return b, tea.Batch(cmd, b.handleMouse(msg))
	case tea.KeyMsg:
		if key.Matches(msg, b.keymap.forceQuit) {
			return b, b.quit()
		}
	}

	var stateCmd tea.Cmd
	switch b.state {
	case loadingState:
		_, stateCmd = b.updateLoading(msg)
	case playerState:
		_, stateCmd = b.updatePlayer(msg)
	case searchState:
		_, stateCmd = b.updateSearch(msg)
	case errorState:
		_, stateCmd = b.updateError(msg)
	}

	return b, tea.Batch(cmd, stateCmd)
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, b.keymap.quit) {
			return b, b.quit()
		}

		// The rail works before the transcript arrives.
		_, cmd = b.handlePlaybackKey(msg)
	case spinner.TickMsg:
		b.spinnerC, cmd = b.spinnerC.Update(msg)
	}

	return b, cmd
}

func (b *statefulBubble) updatePlayer(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	if handled, cmd := b.handlePlaybackKey(keyMsg); handled {
		return b, cmd
	}

	switch {
	case key.Matches(keyMsg, b.keymap.quit):
		return b, b.quit()
	case key.Matches(keyMsg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
		return b, nil
	case key.Matches(keyMsg, b.keymap.toggleTranscript):
		b.showTranscript = !b.showTranscript && b.engine != nil
		return b, nil
	}

	if !b.showTranscript || b.engine == nil {
		return b, nil
	}

	switch {
	case key.Matches(keyMsg, b.keymap.search):
		b.newState(searchState)
		b.inputC.SetValue("")
		return b, b.inputC.Focus()
	case key.Matches(keyMsg, b.keymap.up):
		b.panelC.moveCursor(-1)
	case key.Matches(keyMsg, b.keymap.down):
		b.panelC.moveCursor(1)
	case key.Matches(keyMsg, b.keymap.pageUp):
		b.panelC.scrollBy(-b.panelC.viewport.Height)
	case key.Matches(keyMsg, b.keymap.pageDown):
		b.panelC.scrollBy(b.panelC.viewport.Height)
	case key.Matches(keyMsg, b.keymap.confirm):
		return b, b.activate(b.panelC.cursor)
	}

	return b, nil
}

// handlePlaybackKey handles the seek rail and pause keys shared by every state
// that is not capturing text.
func (b *statefulBubble) handlePlaybackKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keymap.seekBackward):
		b.step(rail.StepBackward)
	case key.Matches(msg, b.keymap.seekForward):
		b.step(rail.StepForward)
	case key.Matches(msg, b.keymap.seekHome):
		b.step(rail.StepHome)
	case key.Matches(msg, b.keymap.seekEnd):
		b.step(rail.StepEnd)
	case key.Matches(msg, b.keymap.playPause):
		return true, b.togglePause()
	default:
		return false, nil
	}
	return true, nil
}

func (b *statefulBubble) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			query := b.inputC.Value()
			b.inputC.Blur()
			b.previousState()
			return b, b.search(query)
		case tea.KeyEsc:
			b.inputC.Blur()
			b.previousState()
			return b, nil
		}
	}

	b.inputC, cmd = b.inputC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, b.keymap.quit):
			return b, b.quit()
		case key.Matches(msg, b.keymap.back):
			b.previousState()
		}
	}
	return b, nil
}

// handleMouse routes pointer input to the rail, or to the transcript below it.
func (b *statefulBubble) handleMouse(msg tea.MouseMsg) tea.Cmd {
	row := msg.Y - paddingStyle.GetPaddingTop()
	onRail := row == railRow && b.geometry.contains(msg.X)

	// Cell centers, so the last cell reaches the end of the rail.
	x := float64(msg.X) + 0.5

	switch msg.Action {
	case tea.MouseActionMotion:
		b.hover(onRail)
		b.rail.OnPointerMove(x)
	case tea.MouseActionRelease:
		b.rail.OnPointerUp()
		b.hover(onRail)
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			b.panelC.scrollBy(-3)
		case tea.MouseButtonWheelDown:
			b.panelC.scrollBy(3)
		default:
			if onRail {
				b.hover(true)
				b.rail.OnPointerDown(x, railButton(msg.Button))
				return nil
			}

			if msg.Button == tea.MouseButtonLeft && b.showTranscript && b.state == playerState {
				if index, ok := b.panelC.itemAt(row - panelRow); ok {
					b.panelC.cursor = index
					return b.activate(index)
				}
			}
		}
	}

	return nil
}

func (b *statefulBubble) hover(onRail bool) {
	if onRail == b.hoverRail {
		return
	}

	b.hoverRail = onRail
	if onRail {
		b.rail.OnPointerEnter()
	} else {
		b.rail.OnPointerLeave()
	}
}

func railButton(button tea.MouseButton) rail.Button {
	switch button {
	case tea.MouseButtonLeft:
		return rail.ButtonPrimary
	case tea.MouseButtonMiddle:
		return rail.ButtonMiddle
	default:
		return rail.ButtonSecondary
	}
}
