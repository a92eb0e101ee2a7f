package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/seekscript/seekscript/config"
	"github.com/seekscript/seekscript/filesystem"
	"github.com/seekscript/seekscript/inline"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringSliceP("transcript", "t", []string{}, "Subtitle files holding the transcript (WebVTT or SRT)")
	lo.Must0(inlineCmd.MarkFlagRequired("transcript"))
	lo.Must0(inlineCmd.MarkFlagFilename("transcript", "vtt", "srt"))

	inlineCmd.Flags().StringP("at", "a", "", "Playback time to highlight the transcript at, in seconds or MM:SS")
	inlineCmd.Flags().StringP("search", "q", "", "Search the transcript and report the cue it seeks to")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("yaml", "y", false, "Format the command output as a YAML document")
	inlineCmd.MarkFlagsMutuallyExclusive("json", "yaml")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")
}

// inlineCmd runs the transcript engine headless.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Highlight and search a transcript without the player",
	Long: `Run the transcript engine without a player or terminal UI.

The highlighted cues are printed one per line, search hits marked with '*'.
With --json the whole cue list is printed along with the match and the
position a search would seek the player to. --yaml prints the same document
as YAML.`,
	Example: `  seekscript inline -t talk.en-x-transcript.vtt --at 1:05
  seekscript inline -t talk.vtt --search 'intro(duction)?' --json`,
	Run: func(cmd *cobra.Command, args []string) {
		transcriptOptions, err := config.TranscriptOptions()
		handleErr(err)

		at := mo.None[float64]()
		if value := lo.Must(cmd.Flags().GetString("at")); value != "" {
			seconds, err := inline.ParseAt(value)
			handleErr(err)
			at = mo.Some(seconds)
		}

		var out io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer file.Close()
			out = file
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		handleErr(inline.Run(ctx, &inline.Options{
			Out:         out,
			Transcripts: lo.Must(cmd.Flags().GetStringSlice("transcript")),
			At:          at,
			Query:       lo.Must(cmd.Flags().GetString("search")),
			Json:        lo.Must(cmd.Flags().GetBool("json")),
			Yaml:        lo.Must(cmd.Flags().GetBool("yaml")),
			Transcript:  transcriptOptions,
		}))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd prints the JSON schema of the inline output.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the inline output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return "inline." + t.Name()
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect(&inline.Output{})))
	},
}
