package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/videoflix/videoflix/icon"
	"github.com/videoflix/videoflix/util"
	"github.com/videoflix/videoflix/where"
)

// clearTarget is a file or directory the clear command can remove.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

var clearTargets = []clearTarget{
	{"session", "session", mo.Some("s"), where.SessionStorage},
	{"resume positions", "local", mo.Some("l"), where.LocalStorage},
	{"queries history", "queries", mo.Some("q"), where.Queries},
	{"temp directory", "temp", mo.Some("t"), where.Temp},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

// clearCmd removes stored application data.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear stored session data, resume positions and history",
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool

		for _, target := range clearTargets {
			if !lo.Must(cmd.Flags().GetBool(target.argLong)) {
				continue
			}

			anyCleared = true
			if err := util.Delete(target.location()); err != nil && !errors.Is(err, fs.ErrNotExist) {
				handleErr(fmt.Errorf("clear %s: %w", target.name, err))
			}
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), target.name)
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
