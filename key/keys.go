// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Seek Rail - these keys govern pointer and keyboard seeking on the progress rail.
const (
	RailSeekStep     = "rail.seek_step"
	RailProgressText = "rail.progress_text"
	RailTouch        = "rail.touch"
)

// Transcript Panel - these keys configure highlighting, searching and scrolling of the timed transcript.
const (
	TranscriptAutoScroll = "transcript.auto_scroll"
	TranscriptLoadShow   = "transcript.load_show"
	TranscriptPolicy     = "transcript.policy"
	TranscriptScrollMs   = "transcript.scroll_ms"
	TranscriptText       = "transcript.text"
	TranscriptSearchText = "transcript.search_text"
)

// Media Playback - these keys maintain the connection to the external playback engine.
const (
	PlayerSocket = "player.socket"
)

// Terminal User Interface (TUI) - these keys define the interactive environment.
const (
	TUIShowHelp = "tui.show_help"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
