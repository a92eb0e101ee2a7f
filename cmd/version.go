package cmd

import (
	"os"
	"os/exec"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/seekscript/seekscript/color"
	"github.com/seekscript/seekscript/constant"
	"github.com/seekscript/seekscript/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Display only the version string without metadata")
}

// revision prefers the ldflags value and falls back to the VCS stamp of the build.
func revision() string {
	if constant.Revision != "unknown" {
		return constant.Revision
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				return setting.Value
			}
		}
	}
	return constant.Revision
}

// mpvVersion returns the first line of mpv --version.
func mpvVersion() string {
	out, err := exec.Command(constant.Player, "--version").Output()
	if err != nil {
		return "not found"
	}

	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and build metadata",
	Long:  "Display the application version, build revision, platform and the mpv found in PATH.",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		rows := [][2]string{
			{"Version", constant.Version},
			{"Git Commit", revision()},
			{"Build Date", strings.TrimSpace(constant.BuiltAt)},
			{"Built By", constant.BuiltBy},
			{"Platform", runtime.GOOS + "/" + runtime.GOARCH},
			{constant.Player, mpvVersion()},
		}

		label := style.New().Faint(true).Width(14).PaddingLeft(2)
		lines := lo.Map(rows, func(row [2]string, _ int) string {
			return lipgloss.JoinHorizontal(lipgloss.Top, label.Render(row[0]), style.Bold(row[1]))
		})

		header := style.Fg(color.Purple)("▇▇▇ " + constant.Seekscript)
		cmd.Println(header + "\n\n" + strings.Join(lines, "\n"))
	},
}
