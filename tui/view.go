package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
	"github.com/videoflix/videoflix/color"
	"github.com/videoflix/videoflix/icon"
	"github.com/videoflix/videoflix/key"
	"github.com/videoflix/videoflix/playback"
	"github.com/videoflix/videoflix/style"
	"github.com/videoflix/videoflix/util"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

// playerTrackRow is the line of the player screen holding the seek bar, counted inside the padding.
const playerTrackRow = 4

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case profilesState:
		output = listExtraPaddingStyle.Render(b.profilesC.View())
	case videosState:
		output = listExtraPaddingStyle.Render(b.videosC.View())
	case searchState:
		output = b.viewSearch()
	case detailState:
		output = b.viewDetail()
	case playerState:
		output = b.viewPlayer()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title("Search Videos"),
		"",
		b.searchC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok && suggestion != strings.ToLower(b.searchC.Value()) {
		lines = append(lines, "", style.Faint(fmt.Sprintf("%s %s", icon.Get(icon.Search), suggestion)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewDetail() string {
	video, ok := b.selectedVideo.Get()
	if !ok {
		return b.renderLines(true, []string{style.Title("Video")})
	}

	wrapWidth := b.width
	if w := viper.GetInt(key.TUIWrapWidth); w > 0 && w < wrapWidth {
		wrapWidth = w
	}

	lines := []string{
		style.Title(video.Title()),
		"",
	}

	var meta []string
	if genres := video.Genres(); len(genres) > 0 {
		meta = append(meta, style.Fg(color.Purple)(strings.Join(genres, ", ")))
	}
	if video.Duration() > 0 {
		meta = append(meta, util.FormatTimestamp(video.Duration()))
	}
	if languages := video.AvailableLanguages(); len(languages) > 0 {
		meta = append(meta, strings.ToUpper(strings.Join(languages, " ")))
	}
	if !video.IsReady() {
		meta = append(meta, style.Fg(color.Yellow)("Processing"))
	}
	if len(meta) > 0 {
		lines = append(lines, strings.Join(meta, " • "), "")
	}

	if profile, ok := b.selectedProfile.Get(); ok {
		if p, ok := profile.ProgressFor(video.ID()).Get(); ok && p.InProgress() {
			lines = append(lines, style.Fg(color.Highlight)(fmt.Sprintf("%s Resume at %s", icon.Get(icon.Play), util.FormatTimestamp(p.CurrentTime))), "")
		}
	}

	if description := video.Description(); description != "" {
		lines = append(lines, strings.Split(wordwrap.String(description, wrapWidth), "\n")...)
	}

	if viper.GetBool(key.TUIShowURLs) {
		lines = append(lines, "", style.Faint(style.Truncate(b.width)(video.StreamURL())))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewPlayer() string {
	o := b.player
	if o == nil {
		return b.viewLoading()
	}

	s := o.Store().Snapshot()

	stateIcon := icon.Playback(s.IsPlaying)

	status := o.State().String()
	if s.IsOptimizing {
		status = "optimizing"
	}

	lines := []string{
		style.Title("Now Playing"),
		"",
		style.Truncate(b.width)(fmt.Sprintf("%s %s %s", stateIcon, style.Fg(color.Purple)(s.Video.Title), style.Faint(status))),
		"",
		b.progressC.ViewAs(s.PlaybackPercent() / 100),
	}

	timeline := fmt.Sprintf("%s / %s", util.FormatTimestamp(s.ProgressTime), util.FormatTimestamp(s.VideoDuration))
	if s.BufferedTime > 0 {
		timeline += style.Faint(fmt.Sprintf("  buffered %.0f%%", s.BufferedPercent()))
	}
	if s.ShowSeekTooltip {
		pad := max(int(s.SeekTooltipPosition)-lipgloss.Width(timeline), 1)
		timeline += strings.Repeat(" ", pad) + style.Fg(color.Highlight)(util.FormatTimestamp(s.SeekTooltipTime))
	}
	lines = append(lines, timeline)

	if s.ShowOverlay {
		lines = append(lines, "", b.viewControls(s))
		if s.ShowSpeedMenu {
			lines = append(lines, "", b.viewSpeedMenu(s))
		}
	}

	return b.renderLines(s.ShowOverlay, lines)
}

func (b *statefulBubble) viewControls(s playback.PlaybackState) string {
	volume := fmt.Sprintf("%s %3.0f%%", icon.Sound(s.IsMuted, s.Volume), s.Volume*100)
	if s.ShowVolumeTooltip {
		volume = style.Fg(color.Highlight)(volume)
	}

	controls := []string{
		volume,
		fmt.Sprintf("%gx", s.PlaybackRate),
	}

	if s.IsFullscreen {
		controls = append(controls, "fullscreen")
	}

	return strings.Join(controls, "  ")
}

func (b *statefulBubble) viewSpeedMenu(s playback.PlaybackState) string {
	options := make([]string, len(playbackRates))
	for i, rate := range playbackRates {
		option := fmt.Sprintf("%d:%gx", i+1, rate)
		if rate == s.PlaybackRate {
			option = style.Fg(color.Highlight)(option)
		}
		options[i] = option
	}
	return "Speed " + strings.Join(options, " ")
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	message := "unknown error"
	if b.lastError != nil {
		message = b.lastError.Error()
	}
	errorMsg := wrap.String(errorStyle.Render(message), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " Something went wrong:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
