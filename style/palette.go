package style

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha
var (
	Base     = lipgloss.Color("#1e1e2e")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext  = lipgloss.Color("#a6adc8")
	Overlay  = lipgloss.Color("#6c7086")
	Surface  = lipgloss.Color("#313244")
	Mauve    = lipgloss.Color("#cba6f7")
	Red      = lipgloss.Color("#f38ba8")
	Yellow   = lipgloss.Color("#f9e2af")
	Green    = lipgloss.Color("#a6e3a1")
	Lavender = lipgloss.Color("#b4befe")
)

var (
	AccentColor  = Mauve
	SuccessColor = Green
	ErrorColor   = Red
)

// Seek rail
var (
	PlayedColor   = Mauve
	BufferedColor = Overlay
	TrackColor    = Surface
	HandleColor   = Text
	PreviewColor  = Lavender
)

// Transcript panel
var (
	ActiveCueColor = Mauve
	SearchHitColor = Yellow
	CueColor       = Subtext
	CursorColor    = Lavender
)
