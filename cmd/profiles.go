package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/videoflix/videoflix/api"
	"github.com/videoflix/videoflix/color"
	"github.com/videoflix/videoflix/icon"
	"github.com/videoflix/videoflix/model"
	"github.com/videoflix/videoflix/session"
	"github.com/videoflix/videoflix/style"
	"github.com/videoflix/videoflix/util"
)

func init() {
	rootCmd.AddCommand(profilesCmd)

	profilesCmd.Flags().IntP("select", "s", 0, "Make the profile with this id the current one")
	profilesCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	profilesCmd.MarkFlagsMutuallyExclusive("select", "json")
	profilesCmd.SetOut(os.Stdout)
}

// profilesCmd lists the profiles of the account and picks the current one.
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the profiles of the account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
		defer cancel()

		client := api.Default()
		sess := session.Default()

		if id := lo.Must(cmd.Flags().GetInt("select")); id != 0 {
			handleErr(selectProfile(ctx, client, sess, id))
			p := sess.CurrentProfile().MustGet()
			cmd.Printf("%s watching as %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Fg(color.Purple)(p.Name))
			return
		}

		res, err := client.Profiles(ctx)
		handleErr(err)
		if !res.IsSuccess() {
			handleErr(fmt.Errorf("load profiles: %s", res.Describe()))
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(res.Data))
			return
		}

		current, hasCurrent := sess.CurrentProfile().Get()
		for _, dto := range res.Data {
			p := model.ProfileFromAPI(dto)

			marker := " "
			if hasCurrent && current.ID == p.ID {
				marker = style.Fg(color.Green)(icon.Get(icon.Mark))
			}

			line := fmt.Sprintf("%s %s %s", marker, style.Faint(fmt.Sprintf("%3d", p.ID)), style.Bold(p.Name))
			if p.Kid {
				line += " " + style.Tag(color.Black, color.Cyan)("kid")
			}
			line += " " + style.Faint(fmt.Sprintf(
				"%s, %s in progress",
				util.Quantify(p.WatchStats.VideosCompleted, "video watched", "videos watched"),
				util.Quantify(len(p.ContinueWatching()), "video", "videos"),
			))
			cmd.Println(line)
		}
	},
}
