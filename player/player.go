// Package player drives the media playback engine. The only backend is mpv,
// controlled through its JSON-IPC socket.
package player

import "github.com/samber/mo"

// Player is a playback engine the seek rail and the transcript control.
type Player interface {
	// Open starts playback of a local file or http(s) URL. If the player is
	// already running, the file is loaded into it.
	Open(target string, title string) error

	// Play resumes playback.
	Play() error

	// Pause suspends playback.
	Pause() error

	// TogglePause inverts the current pause state.
	TogglePause() error

	// SetCurrentTime moves the playhead to an absolute position in seconds.
	SetCurrentTime(seconds float64) error

	// CurrentTime returns the playhead position in seconds.
	CurrentTime() (float64, error)

	// Duration returns the media length, absent while it is unknown.
	Duration() mo.Option[float64]

	// Paused reports whether playback is suspended.
	Paused() (bool, error)

	// IsRunning reports whether the player answers on its socket.
	IsRunning() bool

	// Close stops a player this process started and releases the socket.
	Close() error

	// Socket returns the IPC socket path.
	Socket() string

	// Wait returns a channel closed when the playback session ends.
	Wait() <-chan struct{}
}
