// Package icon provides a multi-variant rendering engine for UI symbols and feedback indicators.
//
// Icons can be displayed as emoji, nerd-font glyphs or plain ASCII depending on user preference.
package icon

import (
	"github.com/seekscript/seekscript/key"
	"github.com/spf13/viper"
)

const (
	emoji = "emoji"
	nerd  = "nerd"
	plain = "plain"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain}
}

// Icon identifies a UI symbol.
type Icon int

const (
	Play Icon = iota
	Pause
	Transcript
	Success
	Fail
)

type iconDef struct {
	emoji string
	nerd  string
	plain string
}

// Get resolves the receiver against the configured icons variant.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	default:
		return ""
	}
}

var icons = map[Icon]*iconDef{
	Play:       {emoji: "▶️", nerd: "", plain: ">"},
	Pause:      {emoji: "⏸️", nerd: "", plain: "||"},
	Transcript: {emoji: "📜", nerd: "", plain: "T"},
	Success:    {emoji: "🎉", nerd: "", plain: "+"},
	Fail:       {emoji: "💀", nerd: "", plain: "x"},
}

// Get returns the rendered string for a specified Icon identifier.
func Get(i Icon) string {
	return icons[i].Get()
}
