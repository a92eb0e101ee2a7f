package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts loading the transcripts and watching the player.
func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, b.waitForTracks(), b.waitForPlayerExit())
}
