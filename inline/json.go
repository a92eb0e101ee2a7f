package inline

import (
	"encoding/json"
	"io"

	"github.com/samber/mo"
	"github.com/seekscript/seekscript/transcript"
	"gopkg.in/yaml.v3"
)

type Cue struct {
	Index  int     `json:"index" yaml:"index"`
	Start  float64 `json:"start" yaml:"start"`
	Stop   float64 `json:"stop" yaml:"stop"`
	Text   string  `json:"text" yaml:"text"`
	Active bool    `json:"active" yaml:"active"`
	Hit    bool    `json:"hit" yaml:"hit"`
}

type Output struct {
	// Language is the base language of a track tagged as a transcript.
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Policy   string `json:"policy" yaml:"policy"`
	// At is the playback time the highlight was computed for.
	At    *float64 `json:"at,omitempty" yaml:"at,omitempty"`
	Query string   `json:"query,omitempty" yaml:"query,omitempty"`
	// Match is the index of the cue the search seeked to.
	Match *int `json:"match,omitempty" yaml:"match,omitempty"`
	// Seek is the position, in seconds, the search moved the player to.
	Seek *float64 `json:"seek,omitempty" yaml:"seek,omitempty"`
	Cues []*Cue   `json:"cues" yaml:"cues"`
}

func newOutput(engine *transcript.Engine, lang mo.Option[string], options *Options, match mo.Option[int], seeks []float64) *Output {
	items := engine.Items()
	cues := engine.Track().Cues

	output := &Output{
		Language: lang.OrEmpty(),
		Policy:   engine.Policy().String(),
		Query:    options.Query,
		Cues:     make([]*Cue, len(cues)),
	}

	if at, ok := options.At.Get(); ok {
		output.At = &at
	}

	if m, ok := match.Get(); ok {
		output.Match = &m
	}

	if len(seeks) > 0 {
		seek := seeks[len(seeks)-1]
		output.Seek = &seek
	}

	for i, cue := range cues {
		output.Cues[i] = &Cue{
			Index:  i,
			Start:  cue.Start,
			Stop:   cue.Stop,
			Text:   cue.Text,
			Active: items[i].Active,
			Hit:    items[i].Hit,
		}
	}

	return output
}

func writeJson(out io.Writer, output *Output) error {
	data, err := json.Marshal(output)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func writeYaml(out io.Writer, output *Output) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(output); err != nil {
		return err
	}
	return encoder.Close()
}
