// Package config registers every setting with its default and loads the
// user's overrides from the TOML file and SEEKSCRIPT_* environment variables.
package config

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/seekscript/seekscript/icon"
	"github.com/seekscript/seekscript/key"
	"github.com/seekscript/seekscript/transcript"
	"github.com/sirupsen/logrus"
)

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func positive(v any) error {
	if v.(int) <= 0 {
		return errors.New("must be positive")
	}
	return nil
}

func nonNegative(v any) error {
	if v.(int) < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func oneOf(options ...string) func(any) error {
	return func(v any) error {
		if !lo.Contains(options, v.(string)) {
			return fmt.Errorf("unknown value %q, available options are: %v", v, options)
		}
		return nil
	}
}

func policy(v any) error {
	_, err := transcript.ParsePolicy(v.(string))
	return err
}

func logLevel(v any) error {
	_, err := logrus.ParseLevel(v.(string))
	return err
}

func init() {
	register := func(k string, v any, desc string, validate ...func(any) error) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}

		field := Field{Key: k, Value: v, Description: desc}
		if len(validate) > 0 {
			field.validate = validate[0]
		}

		Default[k] = field
		EnvExposed = append(EnvExposed, k)
	}

	register(key.RailSeekStep, 5, "Seconds to move per seek key press", positive)
	register(key.RailProgressText, "Seek bar", "Accessible label of the seek handle")
	register(key.RailTouch, false, "Treat the pointer as a touch device.\nDisables the hover time preview")
	register(key.TranscriptAutoScroll, true, "Scroll the transcript to the highlighted cue")
	register(key.TranscriptLoadShow, false, "Show the transcript panel on start")
	register(key.TranscriptPolicy, "multi", "Highlight and search policy.\nAvailable options are: multi (every matching cue, regexp search), single (first match, literal search)", policy)
	register(key.TranscriptScrollMs, 600, "Default auto-scroll animation length in milliseconds", nonNegative)
	register(key.TranscriptText, "Seekable text script", "Label of the transcript panel")
	register(key.TranscriptSearchText, "Search script", "Placeholder of the transcript search box")
	register(key.PlayerSocket, "", "Attach to an already running mpv IPC socket instead of launching mpv")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, plain, nerd (nerd-font required)", oneOf(icon.AvailableVariants()...))
	register(key.TUIShowHelp, true, "Show key help under the player")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace", logLevel)
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
}

// Validate checks a value about to be stored under k.
func Validate(k string, v any) error {
	field, ok := Default[k]
	if !ok {
		return fmt.Errorf("unknown key %s", k)
	}
	return field.Check(v)
}
