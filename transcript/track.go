package transcript

import (
	"regexp"

	"github.com/samber/mo"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Cue is a timed text entry of a track.
type Cue struct {
	Index int
	Start float64
	Stop  float64
	Text  string
}

// Contains reports whether t falls within the cue, bounds included.
func (c Cue) Contains(t float64) bool {
	return t >= c.Start && t <= c.Stop
}

// Track is an ordered cue list with its language tag. Cues are ordered by
// start time but may overlap or leave gaps. A track is never modified once
// handed to an Engine.
type Track struct {
	Lang string
	Cues []Cue
}

// transcriptTag marks a language tag as a transcript rather than ordinary
// subtitles, using a private-use or transformed subtag, e.g. en-GB-x-transcript.
var transcriptTag = regexp.MustCompile(`(.+)-[xt]-transcript`)

// SelectTrack picks the track tagged as a transcript, falling back to the
// first track. The base language of a tagged track is returned for display;
// the fallback leaves it unset. No tracks yields nil.
func SelectTrack(tracks []*Track) (*Track, mo.Option[string]) {
	for _, track := range tracks {
		if track == nil {
			continue
		}

		if m := transcriptTag.FindStringSubmatch(track.Lang); m != nil {
			return track, mo.Some(canonicalTag(m[1]))
		}
	}

	for _, track := range tracks {
		if track != nil {
			return track, mo.None[string]()
		}
	}

	return nil, mo.None[string]()
}

func canonicalTag(tag string) string {
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	return parsed.String()
}

// LanguageName returns the English display name of a language tag, or the tag
// itself when it cannot be parsed.
func LanguageName(tag string) string {
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}

	if name := display.English.Tags().Name(parsed); name != "" {
		return name
	}
	return tag
}
