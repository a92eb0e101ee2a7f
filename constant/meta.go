// Package constant holds the application identifiers shared by every package.
package constant

const (
	// Seekscript names the config directory, the config file, the env prefix and the CLI.
	Seekscript = "seekscript"

	Version = "0.1.0"

	// Player is the executable launched when no IPC socket is given.
	Player = "mpv"
)

// Build metadata, overridden through -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// runtime.GOOS values with a known way to install the player.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)
