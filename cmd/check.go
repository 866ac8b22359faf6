package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/videoflix/videoflix/color"
	"github.com/videoflix/videoflix/constant"
	"github.com/videoflix/videoflix/icon"
	"github.com/videoflix/videoflix/player"
	"github.com/videoflix/videoflix/style"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the configured media player is installed",
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()
		cmd.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), "mpv found")
	},
}

// CheckDependencies exits when the configured player is not on the PATH.
func CheckDependencies() {
	launcher := player.DefaultLauncher()
	if err := launcher.Available(); err != nil {
		binary := launcher.Binary
		if binary == "" {
			binary = "mpv"
		}
		printMissingDependencyError(binary)
		os.Exit(1)
	}
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case constant.Darwin:
		installCmd = "brew install mpv"
	case constant.Linux:
		installCmd = "sudo apt install mpv"
	case constant.Windows:
		installCmd = "scoop install mpv"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.Danger).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(color.Danger).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(color.Foreground).Render(fmt.Sprintf("The media player '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(color.Accent).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
