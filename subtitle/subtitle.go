// Package subtitle reads timed text files into transcript tracks.
package subtitle

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/asticode/go-astisub"
	"github.com/samber/lo"
	"github.com/seekscript/seekscript/filesystem"
	"github.com/seekscript/seekscript/transcript"
)

// Extensions lists the supported file extensions.
var Extensions = []string{".vtt", ".srt"}

// Supported reports whether the file extension is a known subtitle format.
func Supported(path string) bool {
	return lo.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// Lang extracts the language tag from a file name of the form
// name.<tag>.vtt, e.g. talk.en-GB-x-transcript.vtt. Empty if absent.
func Lang(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	i := strings.LastIndex(stem, ".")
	if i < 0 {
		return ""
	}
	return stem[i+1:]
}

// Load reads a subtitle file into a track. The track language comes from the
// file name, see Lang.
func Load(path string) (*transcript.Track, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("unsupported subtitle format: %s", filepath.Ext(path))
	}

	contents, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, err
	}

	track, err := Parse(bytes.NewReader(contents), filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	track.Lang = Lang(path)
	return track, nil
}

// Parse decodes WebVTT or SRT cues, selected by ext.
func Parse(r io.Reader, ext string) (*transcript.Track, error) {
	var (
		subs *astisub.Subtitles
		err  error
	)

	switch strings.ToLower(ext) {
	case ".vtt":
		subs, err = astisub.ReadFromWebVTT(r)
	case ".srt":
		subs, err = astisub.ReadFromSRT(r)
	default:
		return nil, fmt.Errorf("unsupported subtitle format: %s", ext)
	}

	if err != nil {
		return nil, err
	}

	cues := make([]transcript.Cue, 0, len(subs.Items))
	for _, item := range subs.Items {
		text := strings.Join(lo.Map(item.Lines, func(line astisub.Line, _ int) string {
			return strings.TrimSpace(line.String())
		}), " ")

		cues = append(cues, transcript.Cue{
			Index: len(cues),
			Start: item.StartAt.Seconds(),
			Stop:  item.EndAt.Seconds(),
			Text:  strings.TrimSpace(text),
		})
	}

	return &transcript.Track{Cues: cues}, nil
}
