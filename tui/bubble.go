package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/videoflix/videoflix/api"
	"github.com/videoflix/videoflix/color"
	"github.com/videoflix/videoflix/constant"
	"github.com/videoflix/videoflix/internal/ui"
	"github.com/videoflix/videoflix/key"
	"github.com/videoflix/videoflix/model"
	"github.com/videoflix/videoflix/playback"
	"github.com/videoflix/videoflix/player"
	"github.com/videoflix/videoflix/session"
	"github.com/videoflix/videoflix/storage"
	"github.com/videoflix/videoflix/util"
)

// service is the part of the Videoflix API the TUI talks to.
type service interface {
	playback.ProgressAPI
	Profiles(ctx context.Context) (api.Response[[]model.ProfileDTO], error)
	Videos(ctx context.Context) (api.Response[[]model.VideoDTO], error)
}

// statefulBubble holds the whole UI: component models, navigation and the running player.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool

	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	searchC   textinput.Model
	profilesC list.Model
	videosC   list.Model
	progressC progress.Model
	helpC     help.Model

	api      service
	session  *session.Session
	factory  playback.Factory
	local    playback.KV
	notifier *ui.Model
	errors   playback.Notifier

	catalog []model.Video
	query   string

	selectedProfile mo.Option[model.Profile]
	selectedVideo   mo.Option[model.Video]

	player *playback.Orchestrator

	progressStatus string
	lastError      error

	width, height    int
	searchSuggestion mo.Option[string]

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s, remembering where we came from.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains([]state{loadingState, errorState}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// arrive moves to s after loading. A reload pushed s itself, which is dropped.
func (b *statefulBubble) arrive(s state) {
	if b.statesHistory.Len() > 0 && b.statesHistory.Peek() == s {
		b.statesHistory.Pop()
	}
	b.newState(s)
}

func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	b.profilesC.SetSize(listWidth, listHeight)
	b.profilesC.Help.Width = listWidth

	b.videosC.SetSize(listWidth, listHeight)
	b.videosC.Help.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.progressC.Width = b.width
	b.searchC.Width = b.width
	b.helpC.Width = listWidth
}

// seekTrack is where the progress bar is drawn on the player screen.
func (b *statefulBubble) seekTrack() playback.Rect {
	top, _, _, left := paddingStyle.GetPadding()
	return playback.Rect{
		Left:   float64(left),
		Top:    float64(top + playerTrackRow),
		Width:  float64(b.progressC.Width),
		Height: 1,
	}
}

func (b *statefulBubble) startLoading(status string) tea.Cmd {
	b.loading = true
	b.progressStatus = status
	b.newState(loadingState)
	return b.spinnerC.Tick
}

func (b *statefulBubble) stopLoading() {
	b.loading = false
	b.progressStatus = ""
}

// profileID of the selected profile, 0 when none.
func (b *statefulBubble) profileID() int {
	if p, ok := b.selectedProfile.Get(); ok {
		return p.ID
	}
	return 0
}

func (b *statefulBubble) newPlayer() *playback.Orchestrator {
	return playback.New(playback.Config{
		Factory:           b.factory,
		API:               b.api,
		Profiles:          b.session,
		Local:             b.local,
		Notifier:          b.errors,
		Resume:            viper.GetBool(key.PlayerResume),
		OverrideNativeHLS: viper.GetBool(key.PlayerHLSNative),
		StartVolume:       util.Clamp(viper.GetFloat64(key.PlayerVolume), 0, 100) / 100,
	})
}

// teardownPlayer closes a player left open when the program exits.
func (b *statefulBubble) teardownPlayer() {
	if b.player != nil {
		b.player.Teardown()
		b.player = nil
	}
}

func newBubble(options *Options, client service, sess *session.Session, errors playback.Notifier) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,
		api:           client,
		session:       sess,
		factory:       player.DefaultLauncher(),
		local:         storage.Local(),
		notifier:      &ui.Model{},
		errors:        errors,
		options:       options,
		query:         options.Query,
	}

	type listOptions struct {
		TitleStyle mo.Option[lipgloss.Style]
	}

	makeList := func(title string, description bool, options *listOptions) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.ShowDescription = description
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(color.Accent).
			Foreground(color.Accent).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		if titleStyle, ok := options.TitleStyle.Get(); ok {
			listC.Styles.Title = titleStyle
		}
		listC.StatusMessageLifetime = time.Hour * 999
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)
		listC.SetFilteringEnabled(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.searchC = textinput.New()
	bubble.searchC.Placeholder = fmt.Sprintf("Search videos (v%s)", constant.Version)
	bubble.searchC.CharLimit = 60
	bubble.searchC.Prompt = "> "

	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	bubble.profilesC = makeList("Who's watching?", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(color.Background).Background(color.Accent).Padding(0, 1),
		),
	})
	bubble.profilesC.SetStatusBarItemName("profile", "profiles")

	bubble.videosC = makeList("Videos", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(color.Background).Background(color.AccentSoft).Padding(0, 1),
		),
	})
	bubble.videosC.SetStatusBarItemName("video", "videos")

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}
