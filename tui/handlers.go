package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/videoflix/videoflix/key"
	"github.com/videoflix/videoflix/log"
	"github.com/videoflix/videoflix/model"
	"github.com/videoflix/videoflix/playback"
	"github.com/videoflix/videoflix/query"
)

// refreshInterval paces the player screen redraws.
const refreshInterval = 250 * time.Millisecond

type (
	profilesLoadedMsg []model.Profile
	videosLoadedMsg   []model.Video
	playerStartedMsg  struct{ player *playback.Orchestrator }
	playerFailedMsg   struct{ err error }
	playerClosedMsg   struct{ player *playback.Orchestrator }
	tickMsg           time.Time
)

func (b *statefulBubble) requestTimeout() time.Duration {
	if t := viper.GetInt(key.APITimeout); t > 0 {
		return time.Duration(t) * time.Second
	}
	return 30 * time.Second
}

func (b *statefulBubble) loadProfiles() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), b.requestTimeout())
		defer cancel()

		res, err := b.api.Profiles(ctx)
		if err != nil {
			return fmt.Errorf("load profiles: %w", err)
		}
		if !res.IsSuccess() {
			return fmt.Errorf("load profiles: %s", res.Describe())
		}

		return profilesLoadedMsg(lo.Map(res.Data, func(dto model.ProfileDTO, _ int) model.Profile {
			return model.ProfileFromAPI(dto)
		}))
	}
}

func (b *statefulBubble) loadVideos() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), b.requestTimeout())
		defer cancel()

		res, err := b.api.Videos(ctx)
		if err != nil {
			return fmt.Errorf("load videos: %w", err)
		}
		if !res.IsSuccess() {
			return fmt.Errorf("load videos: %s", res.Describe())
		}

		return videosLoadedMsg(lo.Map(res.Data, func(dto model.VideoDTO, _ int) model.Video {
			return model.VideoFromAPI(dto)
		}))
	}
}

func (b *statefulBubble) setProfiles(profiles []model.Profile) tea.Cmd {
	items := make([]list.Item, len(profiles))
	for i := range profiles {
		items[i] = &listItem{internal: &profiles[i]}
	}
	return b.profilesC.SetItems(items)
}

// setVideos shows the catalog filtered by the current query, annotated with the selected profile's progress.
func (b *statefulBubble) setVideos() tea.Cmd {
	filtered := query.Filter(b.query, b.catalog)
	profile, hasProfile := b.selectedProfile.Get()

	items := make([]list.Item, len(filtered))
	for i := range filtered {
		item := &listItem{internal: &filtered[i]}
		if hasProfile {
			if p, ok := profile.ProgressFor(filtered[i].ID()).Get(); ok {
				item.progress = &p
			}
		}
		items[i] = item
	}

	b.videosC.Title = "Videos"
	if b.query != "" {
		b.videosC.Title = fmt.Sprintf("Videos - %q", b.query)
	}

	return b.videosC.SetItems(items)
}

func (b *statefulBubble) selectProfile(p model.Profile) {
	b.selectedProfile = mo.Some(p)
	if err := b.session.SetCurrentProfile(p); err != nil {
		log.Warnf("remember profile: %v", err)
	}
}

// startPlayer opens a new player for v. Opening waits for mpv, so it runs as a command.
func (b *statefulBubble) startPlayer(v model.Video) tea.Cmd {
	if !v.IsReady() {
		return func() tea.Msg {
			return playerFailedMsg{err: errors.New("this video is still being processed")}
		}
	}

	if err := b.session.SetCurrentVideo(v); err != nil {
		log.Warnf("remember video: %v", err)
	}

	o := b.newPlayer()
	b.player = o
	profileID := b.profileID()

	return func() tea.Msg {
		err := o.InitializePlayer(context.Background(), &playback.Host{Name: "terminal"}, playback.VideoRef{
			ID:        v.ID(),
			Title:     v.Title(),
			StreamURL: v.StreamURL(),
		}, profileID)
		if err != nil {
			return playerFailedMsg{err: err}
		}
		return playerStartedMsg{player: o}
	}
}

func waitForPlayer(o *playback.Orchestrator) tea.Cmd {
	return func() tea.Msg {
		<-o.Done()
		return playerClosedMsg{player: o}
	}
}

// stopPlayer tears the player down in the background. Teardown waits for the last save.
func stopPlayer(o *playback.Orchestrator) tea.Cmd {
	return func() tea.Msg {
		o.Teardown()
		return nil
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
