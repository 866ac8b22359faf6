package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/videoflix/videoflix/api"
	"github.com/videoflix/videoflix/color"
	"github.com/videoflix/videoflix/icon"
	"github.com/videoflix/videoflix/key"
	"github.com/videoflix/videoflix/model"
	"github.com/videoflix/videoflix/playback"
	"github.com/videoflix/videoflix/player"
	"github.com/videoflix/videoflix/session"
	"github.com/videoflix/videoflix/storage"
	"github.com/videoflix/videoflix/style"
	"github.com/videoflix/videoflix/util"
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntP("profile", "p", 0, "Profile to save the progress to, defaults to the last used one")
	playCmd.Flags().Bool("local", false, "Only keep the position on this machine")
}

// playCmd opens a single video in mpv without the TUI.
var playCmd = &cobra.Command{
	Use:     "play [video-id]",
	Short:   "Play a video in mpv and keep its progress",
	Args:    cobra.ExactArgs(1),
	Example: "  videoflix play 42 --profile 3",
	Run: func(cmd *cobra.Command, args []string) {
		videoID, err := strconv.Atoi(args[0])
		if err != nil {
			handleErr(fmt.Errorf("invalid video id %q", args[0]))
		}

		CheckDependencies()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		client := api.Default()
		sess := session.Default()

		video, err := fetchVideo(ctx, client, videoID)
		handleErr(err)

		if !video.IsReady() {
			handleErr(errors.New("this video is still being processed"))
		}

		profileID := lo.Must(cmd.Flags().GetInt("profile"))
		if lo.Must(cmd.Flags().GetBool("local")) {
			profileID = 0
		} else if profileID == 0 {
			if p, ok := sess.CurrentProfile().Get(); ok {
				profileID = p.ID
			}
		} else {
			handleErr(selectProfile(ctx, client, sess, profileID))
		}

		handleErr(sess.SetCurrentVideo(video))

		o := playback.New(playback.Config{
			Factory:  player.DefaultLauncher(),
			API:      client,
			Profiles: sess,
			Local:    storage.Local(),
			Notifier: playback.NotifierFunc(func(msg string) {
				cmd.PrintErrf("%s %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), msg)
			}),
			Resume:            viper.GetBool(key.PlayerResume),
			OverrideNativeHLS: viper.GetBool(key.PlayerHLSNative),
			StartVolume:       util.Clamp(viper.GetFloat64(key.PlayerVolume), 0, 100) / 100,
		})

		handleErr(o.InitializePlayer(ctx, &playback.Host{Name: "mpv window"}, playback.VideoRef{
			ID:        video.ID(),
			Title:     video.Title(),
			StreamURL: video.StreamURL(),
		}, profileID))

		cmd.Printf("%s Playing %s\n", style.Fg(color.Green)(icon.Get(icon.Play)), style.Fg(color.Purple)(video.Title()))

		select {
		case <-o.Done():
		case <-ctx.Done():
			o.Teardown()
		}

		if t, ok := savedPosition(sess, profileID, video.ID()).Get(); ok {
			cmd.Printf("%s Saved at %s\n", icon.Get(icon.Mark), util.FormatTimestamp(t))
		}
	},
}

// savedPosition is where the next play resumes: the profile progress, or the local fallback.
func savedPosition(sess *session.Session, profileID, videoID int) mo.Option[float64] {
	if profileID != 0 {
		if p, ok := sess.CurrentProfile().Get(); ok && p.ID == profileID {
			if progress, ok := p.ProgressFor(videoID).Get(); ok {
				return mo.Some(progress.CurrentTime)
			}
		}
	}

	raw, ok := storage.Local().Get(storage.ResumeKey(videoID)).Get()
	if !ok {
		return mo.None[float64]()
	}
	return storage.ParseSeconds(raw)
}

// fetchVideo prefers the session copy of the video, so replaying skips the network.
func fetchVideo(ctx context.Context, client *api.Client, id int) (model.Video, error) {
	if v, ok := session.Default().CurrentVideo().Get(); ok && v.ID() == id {
		return v, nil
	}

	res, err := client.Video(ctx, id)
	if err != nil {
		return model.Video{}, fmt.Errorf("load video %d: %w", id, err)
	}
	if res.IsNotFound() {
		return model.Video{}, fmt.Errorf("video %d not found", id)
	}
	if !res.IsSuccess() {
		return model.Video{}, fmt.Errorf("load video %d: %s", id, res.Describe())
	}

	return model.VideoFromAPI(res.Data), nil
}

// selectProfile loads profile id and makes it the current one.
func selectProfile(ctx context.Context, client *api.Client, sess *session.Session, id int) error {
	res, err := client.Profile(ctx, id)
	if err != nil {
		return fmt.Errorf("load profile %d: %w", id, err)
	}
	if res.IsNotFound() {
		return fmt.Errorf("profile %d not found", id)
	}
	if !res.IsSuccess() {
		return fmt.Errorf("load profile %d: %s", id, res.Describe())
	}

	return sess.SetCurrentProfile(model.ProfileFromAPI(res.Data))
}
