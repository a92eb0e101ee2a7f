// Package cmd implements the command-line interface for seekscript.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/seekscript/seekscript/color"
	"github.com/seekscript/seekscript/config"
	"github.com/seekscript/seekscript/constant"
	"github.com/seekscript/seekscript/icon"
	"github.com/seekscript/seekscript/key"
	"github.com/seekscript/seekscript/log"
	"github.com/seekscript/seekscript/player"
	"github.com/seekscript/seekscript/style"
	"github.com/seekscript/seekscript/tui"
	"github.com/seekscript/seekscript/where"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errNothingToPlay = errors.New("nothing to play: pass a media file or attach with --socket")

func completionPolicies(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"multi", "single"}, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("policy", "p", "", "Transcript highlight and search policy (multi, single)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("policy", completionPolicies))
	lo.Must0(viper.BindPFlag(key.TranscriptPolicy, rootCmd.PersistentFlags().Lookup("policy")))

	rootCmd.Flags().StringSliceP("transcript", "t", []string{}, "Subtitle files holding the transcript (WebVTT or SRT)")
	lo.Must0(rootCmd.MarkFlagFilename("transcript", "vtt", "srt"))

	rootCmd.Flags().StringP("socket", "s", "", "Attach to the IPC socket of an already running mpv")
	lo.Must0(viper.BindPFlag(key.PlayerSocket, rootCmd.Flags().Lookup("socket")))

	rootCmd.Flags().BoolP("show-transcript", "T", false, "Show the transcript panel on start")
	lo.Must0(viper.BindPFlag(key.TranscriptLoadShow, rootCmd.Flags().Lookup("show-transcript")))

	rootCmd.Flags().String("title", "", "Title shown above the seek rail")
}

// rootCmd plays a media file with the seek rail and its transcript.
var rootCmd = &cobra.Command{
	Use:   constant.Seekscript + " [media]",
	Short: "Play media in mpv with a seek rail and a searchable, synchronized transcript",
	Long: style.New().Bold(true).Foreground(color.HiPurple).Render(constant.Seekscript) + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Play media in mpv with a seek rail and a searchable, synchronized transcript") + `

Subtitle files next to the media that share its name are picked up as
transcripts unless --transcript is given. A track whose language tag ends in
-x-transcript (e.g. talk.en-GB-x-transcript.vtt) is preferred.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		var media string
		if len(args) > 0 {
			media = args[0]
		}

		socket := viper.GetString(key.PlayerSocket)
		if media == "" && socket == "" {
			handleErr(errNothingToPlay)
		}

		var playerOptions []player.Option
		if socket != "" {
			playerOptions = append(playerOptions, player.WithSocket(socket))
		} else {
			CheckDependencies()
		}

		transcripts := lo.Must(cmd.Flags().GetStringSlice("transcript"))
		if len(transcripts) == 0 && media != "" {
			transcripts = where.Sidecars(media)
		}
		log.Infof("transcripts: %s", strings.Join(transcripts, ", "))

		transcriptOptions, err := config.TranscriptOptions()
		handleErr(err)

		title := lo.Must(cmd.Flags().GetString("title"))
		if title == "" && media != "" {
			title = filepath.Base(media)
		}
		if title == "" {
			title = constant.Player
		}

		mpv := player.NewMPV(playerOptions...)
		handleErr(mpv.Open(media, title))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		err = tui.Run(ctx, &tui.Options{
			Title:             title,
			Player:            mpv,
			Transcripts:       transcripts,
			Rail:              config.RailOptions(),
			Transcript:        transcriptOptions,
			ShowTranscript:    viper.GetBool(key.TranscriptLoadShow),
			ShowHelp:          viper.GetBool(key.TUIShowHelp),
			PanelLabel:        viper.GetString(key.TranscriptText),
			SearchPlaceholder: viper.GetString(key.TranscriptSearchText),
		})
		if err != nil {
			_ = mpv.Close()
		}
		handleErr(err)
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
