package tui

import (
	"errors"
	"fmt"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/videoflix/videoflix/internal/ui"
	"github.com/videoflix/videoflix/log"
	"github.com/videoflix/videoflix/model"
	"github.com/videoflix/videoflix/open"
	"github.com/videoflix/videoflix/playback"
	"github.com/videoflix/videoflix/query"
)

const (
	volumeStep = 0.05
	jumpStep   = 60
)

var playbackRates = []float64{0.5, 0.75, 1, 1.5, 2}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case error:
		b.stopLoading()
		b.raiseError(msg)
		return b, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case spinner.TickMsg:
		if b.loading {
			var spinnerCmd tea.Cmd
			b.spinnerC, spinnerCmd = b.spinnerC.Update(msg)
			return b, tea.Batch(cmd, spinnerCmd)
		}
		return b, cmd
	case playerClosedMsg:
		return b, tea.Batch(cmd, b.onPlayerClosed(msg.player))
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	var stateCmd tea.Cmd
	switch b.state {
	case loadingState:
		stateCmd = b.updateLoading(msg)
	case profilesState:
		stateCmd = b.updateProfiles(msg)
	case videosState:
		stateCmd = b.updateVideos(msg)
	case searchState:
		stateCmd = b.updateSearch(msg)
	case detailState:
		stateCmd = b.updateDetail(msg)
	case playerState:
		stateCmd = b.updatePlayer(msg)
	case errorState:
		stateCmd = b.updateError(msg)
	}

	return b, tea.Batch(cmd, stateCmd)
}

func (b *statefulBubble) updateLoading(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.back) {
			b.stopLoading()
			if b.statesHistory.Len() == 0 {
				return tea.Quit
			}
			b.previousState()
		}
	case profilesLoadedMsg:
		b.stopLoading()
		return b.onProfilesLoaded(msg)
	case videosLoadedMsg:
		b.stopLoading()
		b.catalog = msg
		b.arrive(videosState)
		return b.setVideos()
	case playerStartedMsg:
		b.stopLoading()
		b.newState(playerState)
		msg.player.Overlay().ResetOverlayTimer(msg.player.Store().IsPlaying())
		return tea.Batch(waitForPlayer(msg.player), tick())
	case playerFailedMsg:
		b.stopLoading()
		b.previousState()
		var cmd tea.Cmd
		if b.player != nil {
			cmd = stopPlayer(b.player)
			b.player = nil
		}
		return tea.Batch(cmd, ui.Notify(msg.err.Error()))
	}

	return nil
}

func (b *statefulBubble) onProfilesLoaded(profiles []model.Profile) tea.Cmd {
	cmd := b.setProfiles(profiles)

	if id := b.options.ProfileID; id != 0 {
		b.options.ProfileID = 0

		p, ok := lo.Find(profiles, func(p model.Profile) bool { return p.ID == id })
		if !ok {
			b.raiseError(fmt.Errorf("profile %d not found", id))
			return cmd
		}

		b.setState(profilesState)
		b.selectProfile(p)
		return tea.Batch(cmd, b.startLoading("Loading videos"), b.loadVideos())
	}

	if current, ok := b.session.CurrentProfile().Get(); ok {
		_, index, found := lo.FindIndexOf(profiles, func(p model.Profile) bool { return p.ID == current.ID })
		if found {
			b.profilesC.Select(index)
		}
	}

	b.arrive(profilesState)
	return cmd
}

func (b *statefulBubble) updateProfiles(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.reload):
			return tea.Batch(b.startLoading("Loading profiles"), b.loadProfiles())
		case bubblesKey.Matches(msg, b.keymap.confirm):
			item, ok := b.profilesC.SelectedItem().(*listItem)
			if !ok {
				return nil
			}
			b.selectProfile(*item.internal.(*model.Profile))
			return tea.Batch(b.startLoading("Loading videos"), b.loadVideos())
		}
	}

	var cmd tea.Cmd
	b.profilesC, cmd = b.profilesC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateVideos(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.query != "" {
				b.query = ""
				return b.setVideos()
			}
			b.previousState()
			return nil
		case bubblesKey.Matches(msg, b.keymap.reload):
			return tea.Batch(b.startLoading("Loading videos"), b.loadVideos())
		case bubblesKey.Matches(msg, b.keymap.search):
			b.newState(searchState)
			b.searchC.SetValue(b.query)
			b.searchC.CursorEnd()
			b.searchSuggestion = mo.None[string]()
			return tea.Batch(b.searchC.Focus(), textinput.Blink)
		case bubblesKey.Matches(msg, b.keymap.confirm):
			item, ok := b.videosC.SelectedItem().(*listItem)
			if !ok {
				return nil
			}
			b.selectedVideo = mo.Some(*item.internal.(*model.Video))
			b.newState(detailState)
			return nil
		}
	}

	var cmd tea.Cmd
	b.videosC, cmd = b.videosC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateSearch(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.searchC.Blur()
			b.previousState()
			return nil
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion):
			if suggestion, ok := b.searchSuggestion.Get(); ok {
				b.searchC.SetValue(suggestion)
				b.searchC.CursorEnd()
				b.searchSuggestion = mo.None[string]()
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			b.query = b.searchC.Value()
			if err := query.Remember(b.query, 1); err != nil {
				log.Warnf("remember query: %v", err)
			}
			b.searchC.Blur()
			b.previousState()
			b.videosC.ResetSelected()
			return b.setVideos()
		}
	}

	var cmd tea.Cmd
	b.searchC, cmd = b.searchC.Update(msg)

	if value := b.searchC.Value(); value != "" {
		b.searchSuggestion = query.Suggest(value)
	} else {
		b.searchSuggestion = mo.None[string]()
	}

	return cmd
}

func (b *statefulBubble) updateDetail(msg tea.Msg) tea.Cmd {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	video, ok := b.selectedVideo.Get()
	if !ok {
		b.previousState()
		return nil
	}

	switch {
	case bubblesKey.Matches(msgKey, b.keymap.quit):
		return tea.Quit
	case bubblesKey.Matches(msgKey, b.keymap.back):
		b.previousState()
	case bubblesKey.Matches(msgKey, b.keymap.openURL):
		if err := open.Preview(video); err != nil {
			if errors.Is(err, open.ErrNoPreview) {
				return ui.Notify("No preview available for this video.")
			}
			log.Warnf("open preview: %v", err)
			return ui.Notify("The preview could not be opened.")
		}
	case bubblesKey.Matches(msgKey, b.keymap.play):
		return tea.Batch(b.startLoading("Starting player"), b.startPlayer(video))
	}

	return nil
}

func (b *statefulBubble) updatePlayer(msg tea.Msg) tea.Cmd {
	o := b.player
	if o == nil {
		return nil
	}

	switch msg := msg.(type) {
	case tickMsg:
		return tick()
	case tea.MouseMsg:
		b.handleMouse(o, msg)
	case tea.KeyMsg:
		return b.handlePlayerKey(o, msg)
	}

	return nil
}

func (b *statefulBubble) handlePlayerKey(o *playback.Orchestrator, msg tea.KeyMsg) tea.Cmd {
	if bubblesKey.Matches(msg, b.keymap.back, b.keymap.quit) {
		return stopPlayer(o)
	}

	store := o.Store()
	defer func() {
		o.Overlay().ResetOverlayTimer(store.IsPlaying())
	}()

	if !bubblesKey.Matches(msg, b.keymap.volumeUp, b.keymap.volumeDown) {
		store.SetVolumeTooltip(false, 0)
		store.SetShowVolumeControl(false)
	}

	switch {
	case bubblesKey.Matches(msg, b.keymap.playPause):
		o.TogglePlay()
	case bubblesKey.Matches(msg, b.keymap.seekBackward):
		o.Seeker().HandleKeyboardSeek(playback.Backward, playback.DefaultKeyboardSeek)
	case bubblesKey.Matches(msg, b.keymap.seekForward):
		o.Seeker().HandleKeyboardSeek(playback.Forward, playback.DefaultKeyboardSeek)
	case bubblesKey.Matches(msg, b.keymap.jumpBackward):
		b.jump(o, -jumpStep, false)
	case bubblesKey.Matches(msg, b.keymap.jumpForward):
		b.jump(o, jumpStep, false)
	case bubblesKey.Matches(msg, b.keymap.jumpStart):
		b.jump(o, 0, true)
	case bubblesKey.Matches(msg, b.keymap.volumeUp):
		b.stepVolume(o, volumeStep)
	case bubblesKey.Matches(msg, b.keymap.volumeDown):
		b.stepVolume(o, -volumeStep)
	case bubblesKey.Matches(msg, b.keymap.mute):
		o.Volume().ToggleSound()
	case bubblesKey.Matches(msg, b.keymap.fullscreen):
		o.Fullscreen().Toggle()
	case bubblesKey.Matches(msg, b.keymap.speedMenu):
		store.SetShowSpeedMenu(!store.ShowSpeedMenu())
	case bubblesKey.Matches(msg, b.keymap.speed):
		if !store.ShowSpeedMenu() {
			return nil
		}
		index := int(msg.Runes[0] - '1')
		if index >= 0 && index < len(playbackRates) {
			o.SetPlaybackRate(playbackRates[index])
		}
	}

	return nil
}

// jump seeks through the debounced jump. The user already sees failures through the notifier.
func (b *statefulBubble) jump(o *playback.Orchestrator, seconds float64, isInit bool) {
	if err := o.Seeker().JumpTime(seconds, isInit); err != nil {
		log.Debugf("jump %.0fs: %v", seconds, err)
	}
}

func (b *statefulBubble) stepVolume(o *playback.Orchestrator, delta float64) {
	o.Volume().Step(delta)
	store := o.Store()
	store.SetShowVolumeControl(true)
	store.SetVolumeTooltip(true, store.Volume())
}

func (b *statefulBubble) handleMouse(o *playback.Orchestrator, msg tea.MouseMsg) {
	store := o.Store()
	seeker := o.Seeker()
	track := b.seekTrack()
	pointer := playback.Pointer{X: float64(msg.X), Y: float64(msg.Y)}

	onTrack := msg.Y == int(track.Top) &&
		pointer.X >= track.Left && pointer.X < track.Left+track.Width

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if onTrack {
				seeker.ScrubStart()
				seeker.Scrubbing(pointer, track)
			}
		case tea.MouseButtonWheelUp:
			b.stepVolume(o, volumeStep)
		case tea.MouseButtonWheelDown:
			b.stepVolume(o, -volumeStep)
		}
	case tea.MouseActionMotion:
		switch {
		case store.IsScrubbing():
			seeker.Scrubbing(pointer, track)
		case onTrack:
			store.SetSeekTooltip(true, track.Fraction(pointer.X)*store.VideoDuration(), pointer.X-track.Left)
		default:
			store.SetSeekTooltip(false, 0, 0)
		}
	case tea.MouseActionRelease:
		if store.IsScrubbing() {
			seeker.ScrubEnd(pointer, track)
		}
	}

	o.Overlay().ResetOverlayTimer(store.IsPlaying())
}

// onPlayerClosed returns to the details once the player is gone and picks up the saved progress.
func (b *statefulBubble) onPlayerClosed(o *playback.Orchestrator) tea.Cmd {
	if o != b.player {
		return nil
	}
	b.player = nil

	if current, ok := b.session.CurrentProfile().Get(); ok && current.ID == b.profileID() {
		b.selectedProfile = mo.Some(current)
	}

	if b.state == playerState {
		b.previousState()
	}
	return b.setVideos()
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.lastError = nil
			if b.statesHistory.Len() == 0 {
				return tea.Quit
			}
			b.previousState()
		case bubblesKey.Matches(msg, b.keymap.quit):
			return tea.Quit
		}
	}

	return nil
}
