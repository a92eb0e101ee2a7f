// Package inline runs the transcript engine without a terminal UI and prints
// the resulting cue state, for scripts and quick checks of a transcript file.
package inline

import (
	"fmt"
	"io"
	"strconv"

	"github.com/samber/mo"
	"github.com/seekscript/seekscript/timecode"
	"github.com/seekscript/seekscript/transcript"
)

type Options struct {
	Out         io.Writer
	Transcripts []string
	At          mo.Option[float64]
	Query       string
	Json        bool
	Yaml        bool
	Transcript  transcript.Options
}

// ParseAt accepts plain seconds ("83.5") or a timecode ("1:23.5", "01:02:03").
func ParseAt(value string) (float64, error) {
	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("negative time: %s", value)
		}
		return seconds, nil
	}

	seconds, err := timecode.Parse(value)
	if err != nil {
		return 0, fmt.Errorf("invalid time: %s", value)
	}
	return seconds, nil
}
