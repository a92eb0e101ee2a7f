package cmd

import (
	"os"

	"github.com/samber/lo"
	"github.com/seekscript/seekscript/color"
	"github.com/seekscript/seekscript/style"
	"github.com/seekscript/seekscript/where"
	"github.com/spf13/cobra"
)

type whereTarget struct {
	name  string
	flag  string
	short string
	path  func() string
}

var whereTargets = []whereTarget{
	{"Config", "config", "c", where.Config},
	{"Config file", "config-file", "f", configFilePath},
	{"Logs", "logs", "l", where.Logs},
	{"Player sockets", "temp", "t", where.Temp},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, target := range whereTargets {
		whereCmd.Flags().BoolP(target.flag, target.short, false, "Print only the "+target.name+" path")
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(whereTargets, func(t whereTarget, _ int) string {
		return t.flag
	})...)

	whereCmd.SetOut(os.Stdout)
}

// whereCmd prints where seekscript keeps its files.
var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Display the paths of the configuration, logs and player sockets",
	Run: func(cmd *cobra.Command, args []string) {
		if target, ok := lo.Find(whereTargets, func(t whereTarget) bool {
			return lo.Must(cmd.Flags().GetBool(t.flag))
		}); ok {
			cmd.Println(target.path())
			return
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		for i, target := range whereTargets {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("%s %s\n", header(target.name+"?"), style.Fg(color.Yellow)("--"+target.flag))
			cmd.Println(target.path())
		}
	},
}
