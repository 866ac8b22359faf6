package cmd

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/videoflix/videoflix/color"
	"github.com/videoflix/videoflix/constant"
	"github.com/videoflix/videoflix/style"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Display only the version string without metadata")
}

// buildSetting reads a vcs setting stamped by the go toolchain.
func buildSetting(name string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	setting, found := lo.Find(info.Settings, func(s debug.BuildSetting) bool {
		return s.Key == name
	})
	if !found || setting.Value == "" {
		return "unknown"
	}
	return setting.Value
}

// versionCmd displays application version and build metadata.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		versionInfo := struct {
			Version  string
			OS       string
			Arch     string
			BuiltAt  string
			Revision string
			App      string
			Go       string
		}{
			Version:  constant.Version,
			App:      constant.Videoflix,
			OS:       runtime.GOOS,
			Arch:     runtime.GOARCH,
			BuiltAt:  buildSetting("vcs.time"),
			Revision: buildSetting("vcs.revision"),
			Go:       strings.TrimPrefix(runtime.Version(), "go"),
		}

		t, err := template.New("version").Funcs(map[string]any{
			"faint":   style.Faint,
			"bold":    style.Bold,
			"magenta": style.Fg(color.Purple),
		}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}         {{ bold .Version }}
  {{ faint "Git Commit" }}      {{ bold .Revision }}
  {{ faint "Build Date" }}      {{ bold .BuiltAt }}
  {{ faint "Go" }}              {{ bold .Go }}
  {{ faint "Platform" }}        {{ bold .OS }}/{{ bold .Arch }}
`)
		handleErr(err)
		handleErr(t.Execute(cmd.OutOrStdout(), versionInfo))
	},
}
