package inline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/samber/mo"
	"github.com/seekscript/seekscript/log"
	"github.com/seekscript/seekscript/subtitle"
	"github.com/seekscript/seekscript/timecode"
	"github.com/seekscript/seekscript/transcript"
)

var errNoTranscript = errors.New("no transcript could be loaded")

// recorder stands in for the player and keeps the requested seeks.
type recorder struct {
	seeks []float64
}

func (r *recorder) Play() error  { return nil }
func (r *recorder) Pause() error { return nil }

func (r *recorder) SetCurrentTime(seconds float64) error {
	r.seeks = append(r.seeks, seconds)
	return nil
}

func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	loader := subtitle.NewLoader(options.Transcripts...)
	loader.Start(ctx)

	var tracks []*transcript.Track
	select {
	case <-ctx.Done():
		return ctx.Err()
	case loaded, ok := <-loader.Loaded():
		if !ok {
			return ctx.Err()
		}
		tracks = loaded
	}

	seeker := &recorder{}
	engine, lang := transcript.Build(tracks, seeker, nil, options.Transcript)
	if engine == nil {
		if err := loader.Err(); err != nil {
			return fmt.Errorf("%w: %w", errNoTranscript, err)
		}
		return errNoTranscript
	}

	engine.Render()

	if at, ok := options.At.Get(); ok {
		engine.OnTimeAdvance(at)
	}

	match := mo.None[int]()
	if options.Query != "" && engine.Search(options.Query) {
		match = engine.State().SearchMatch
		log.Infof("%q matched cue %d", options.Query, match.OrElse(-1))
	}

	output := newOutput(engine, lang, options, match, seeker.seeks)
	switch {
	case options.Json:
		return writeJson(options.Out, output)
	case options.Yaml:
		return writeYaml(options.Out, output)
	}

	return writeText(options.Out, output)
}

// writeText prints the cues that are highlighted, one per line.
func writeText(out io.Writer, output *Output) error {
	var duration float64
	if n := len(output.Cues); n > 0 {
		duration = output.Cues[n-1].Stop
	}

	for _, cue := range output.Cues {
		if !cue.Active && !cue.Hit {
			continue
		}

		marker := " "
		if cue.Hit {
			marker = "*"
		}

		if _, err := fmt.Fprintf(out, "%s %s  %s\n", marker, timecode.ForDuration(cue.Start, duration), cue.Text); err != nil {
			return err
		}
	}

	return nil
}
