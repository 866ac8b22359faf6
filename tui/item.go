package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
	"github.com/videoflix/videoflix/color"
	"github.com/videoflix/videoflix/icon"
	"github.com/videoflix/videoflix/key"
	"github.com/videoflix/videoflix/model"
	"github.com/videoflix/videoflix/style"
	"github.com/videoflix/videoflix/util"
)

// listItem implements list.Item for profiles and videos.
type listItem struct {
	internal any
	// progress of the selected profile, for video items
	progress *model.VideoProgress
}

func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case *model.Profile:
		title = e.Name
		if e.Kid {
			title = fmt.Sprintf("%s %s", title, icon.Get(icon.Kid))
		}
	case *model.Video:
		title = e.Title()
		if t.progress != nil && t.progress.InProgress() {
			title = fmt.Sprintf("%s %s", title, lipgloss.NewStyle().Bold(true).Foreground(color.Accent).Render(icon.Get(icon.Mark)))
		}
	case string:
		title = e
	}

	return
}

func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case *model.Profile:
		var parts []string
		if e.Language != "" {
			parts = append(parts, strings.ToUpper(e.Language))
		}
		parts = append(parts, util.Quantify(e.WatchStats.VideosCompleted, "video", "videos")+" watched")
		if n := len(e.ContinueWatching()); n > 0 {
			parts = append(parts, lipgloss.NewStyle().Foreground(color.InProgress).Render(fmt.Sprintf("%d in progress", n)))
		}
		description = strings.Join(parts, " • ")
	case *model.Video:
		var parts []string

		if !e.IsReady() {
			parts = append(parts, lipgloss.NewStyle().Foreground(color.Processing).Render("Processing"))
		}

		if genres := e.Genres(); len(genres) > 0 {
			parts = append(parts, lipgloss.NewStyle().Foreground(color.Accent).Render(strings.Join(genres, ", ")))
		}

		if e.Duration() > 0 {
			parts = append(parts, lipgloss.NewStyle().Foreground(color.Muted).Render(util.FormatTimestamp(e.Duration())))
		}

		if t.progress != nil {
			switch t.progress.Status {
			case model.StatusCompleted:
				parts = append(parts, lipgloss.NewStyle().Foreground(color.Success).Render("Watched"))
			case model.StatusWatching:
				if e.Duration() > 0 {
					percent := util.Clamp(t.progress.CurrentTime/e.Duration()*100, 0, 100)
					parts = append(parts, lipgloss.NewStyle().Foreground(color.InProgress).Render(fmt.Sprintf("%.0f%%", percent)))
				}
			}
		}

		if viper.GetBool(key.TUIShowURLs) && e.StreamURL() != "" {
			parts = append(parts, style.Faint(e.StreamURL()))
		}

		description = strings.Join(parts, " • ")
	}

	return
}

func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *model.Profile:
		return e.Name
	case *model.Video:
		return e.Title()
	case string:
		return e
	default:
		return ""
	}
}
