package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/videoflix/videoflix/api"
	"github.com/videoflix/videoflix/color"
	"github.com/videoflix/videoflix/filesystem"
	"github.com/videoflix/videoflix/icon"
	"github.com/videoflix/videoflix/key"
	"github.com/videoflix/videoflix/log"
	"github.com/videoflix/videoflix/model"
	"github.com/videoflix/videoflix/query"
	"github.com/videoflix/videoflix/session"
	"github.com/videoflix/videoflix/style"
	"github.com/videoflix/videoflix/util"
)

func init() {
	rootCmd.AddCommand(videosCmd)

	videosCmd.Flags().StringP("query", "q", "", "Only list videos matching the query by title or genre")
	videosCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	videosCmd.Flags().StringP("output", "o", "", "Write the output to a file")

	lo.Must0(videosCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
}

// VideosOutput is the JSON document written by `videos --json`.
type VideosOutput struct {
	Query  string           `json:"query"`
	Videos []model.VideoDTO `json:"videos"`
	// Progress of the current profile, by video id.
	Progress map[int]model.VideoProgressDTO `json:"progress,omitempty"`
}

// videosCmd lists the catalog without starting the TUI.
var videosCmd = &cobra.Command{
	Use:   "videos",
	Short: "List the videos of the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			q      = lo.Must(cmd.Flags().GetString("query"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			output = lo.Must(cmd.Flags().GetString("output"))
		)

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
		defer cancel()

		res, err := api.Default().Videos(ctx)
		handleErr(err)
		if !res.IsSuccess() {
			handleErr(fmt.Errorf("load videos: %s", res.Describe()))
		}

		videos := query.Filter(q, lo.Map(res.Data, func(dto model.VideoDTO, _ int) model.Video {
			return model.VideoFromAPI(dto)
		}))

		if q != "" {
			if err := query.Remember(q, 1); err != nil {
				log.Warnf("remember query: %v", err)
			}
		}

		var writer io.Writer = os.Stdout
		if output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer file.Close()
			writer = file
		}

		profile, hasProfile := session.Default().CurrentProfile().Get()

		if asJson {
			out := VideosOutput{
				Query: q,
				Videos: lo.Map(videos, func(v model.Video, _ int) model.VideoDTO {
					return v.ToAPIFormat()
				}),
			}
			if hasProfile {
				out.Progress = make(map[int]model.VideoProgressDTO)
				for _, v := range videos {
					if p, ok := profile.ProgressFor(v.ID()).Get(); ok {
						out.Progress[v.ID()] = p.ToAPIFormat()
					}
				}
			}
			handleErr(json.NewEncoder(writer).Encode(out))
			return
		}

		if len(videos) == 0 {
			_, _ = fmt.Fprintf(writer, "%s no videos found\n", icon.Get(icon.Fail))
			return
		}

		genreTag := style.Tag(color.Black, color.Purple)
		for _, v := range videos {
			line := fmt.Sprintf("%s %s", style.Faint(fmt.Sprintf("%4d", v.ID())), style.Bold(v.Title()))
			if genres := v.Genres(); len(genres) > 0 {
				line += " " + genreTag(strings.Join(genres, ", "))
			}
			if v.Duration() > 0 {
				line += " " + util.FormatTimestamp(v.Duration())
			}
			if !v.IsReady() {
				line += " " + style.Fg(color.Yellow)("processing")
			}
			if hasProfile {
				if p, ok := profile.ProgressFor(v.ID()).Get(); ok {
					line += " " + style.Fg(color.Highlight)(progressLabel(p))
				}
			}
			_, _ = fmt.Fprintln(writer, line)
		}

		_, _ = fmt.Fprintln(writer, style.Faint(util.Quantify(len(videos), "video", "videos")))
	},
}

func progressLabel(p model.VideoProgress) string {
	if p.Completed {
		return "watched"
	}
	return fmt.Sprintf("%.0f%%", p.ProgressPercentage)
}

func requestTimeout() time.Duration {
	if t := viper.GetInt(key.APITimeout); t > 0 {
		return time.Duration(t) * time.Second
	}
	return 30 * time.Second
}

func init() {
	videosCmd.AddCommand(videosSchemaCmd)

	videosSchemaCmd.Flags().BoolP("profiles", "p", false, "Generate the JSON Schema of the profiles output instead")
}

// videosSchemaCmd generates JSON schemas for the structured outputs.
var videosSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the --json output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "videodto", "profiledto", "videoprogressdto", "watchstatsdto":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("profiles")):
			schema = reflector.Reflect([]model.ProfileDTO{})
		default:
			schema = reflector.Reflect(&VideosOutput{})
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
