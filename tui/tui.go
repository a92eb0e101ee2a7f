// Package tui is the interactive player: a seek rail under the title and the
// synchronized transcript below it, both driving mpv.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/seekscript/seekscript/log"
	"github.com/seekscript/seekscript/player"
	"github.com/seekscript/seekscript/rail"
	"github.com/seekscript/seekscript/transcript"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Title is shown above the rail.
	Title string
	// Player must already be playing, see player.Player.Open.
	Player player.Player
	// Transcripts are subtitle files loaded in the background.
	Transcripts []string

	Rail       rail.Options
	Transcript transcript.Options

	ShowTranscript    bool
	ShowHelp          bool
	PanelLabel        string
	SearchPlaceholder string
}

// Run starts the Bubble Tea program and blocks until the user quits or
// playback ends. Player events are forwarded into the program, so they are
// handled one at a time on its update loop.
func Run(ctx context.Context, options *Options) error {
	if options.Player == nil {
		return fmt.Errorf("no player")
	}

	bubble := newBubble(options)
	bubble.ctx = ctx

	program := tea.NewProgram(
		bubble,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)

	listener := player.NewEventListener(options.Player.Socket(), func(e player.Event) {
		program.Send(playerEventMsg(e))
	})
	if err := listener.Start(); err != nil {
		return err
	}
	defer listener.Stop()

	_, err := program.Run()
	if err != nil {
		log.Errorf("tui: %v", err)
	}
	return err
}
