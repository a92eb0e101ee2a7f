// Package timecode renders playback positions as clock-style labels.
package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Hour is the duration in seconds from which labels carry an hours field.
const Hour = 3600

// Format renders seconds as MM:SS, or HH:MM:SS when forceHours is set.
// Negative and NaN inputs render as zero.
func Format(seconds float64, forceHours bool) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}

	total := int(math.Floor(seconds))
	h := total / Hour
	m := (total % Hour) / 60
	s := total % 60

	if forceHours || h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// ForDuration renders seconds using the layout implied by the media duration.
func ForDuration(seconds, duration float64) string {
	return Format(seconds, duration >= Hour)
}

var errTimecode = errors.New("malformed timecode")

// Parse reads a label in the layouts Format produces, also accepting a
// fractional seconds field and a single-digit leading field.
func Parse(label string) (float64, error) {
	fields := strings.Split(strings.TrimSpace(label), ":")
	if len(fields) < 2 || len(fields) > 3 {
		return 0, errTimecode
	}

	var seconds float64
	for i, field := range fields {
		last := i == len(fields)-1

		value, err := strconv.ParseFloat(field, 64)
		if err != nil || value < 0 || (!last && value != math.Trunc(value)) {
			return 0, errTimecode
		}
		if i > 0 && value >= 60 {
			return 0, errTimecode
		}

		seconds = seconds*60 + value
	}

	return seconds, nil
}
