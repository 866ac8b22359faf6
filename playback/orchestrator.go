package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samber/mo"
	"github.com/videoflix/videoflix/log"
)

const startFailedMessage = "The player could not be started."

// Host is where the player is shown. WindowID embeds it into an existing window.
type Host struct {
	Name     string
	WindowID mo.Option[int]
}

// Config wires an Orchestrator to its collaborators.
type Config struct {
	Factory  Factory
	API      ProgressAPI
	Profiles ProfileCache
	Local    KV
	Notifier Notifier
	Clock    Clock

	// Resume starts at the saved position instead of 0.
	Resume bool
	// OverrideNativeHLS forces the backend's own HLS handling.
	OverrideNativeHLS bool
	// StartVolume in [0, 1]. Zero means DefaultVolume.
	StartVolume float64
}

// Orchestrator owns the backend of one player mount and routes its events.
type Orchestrator struct {
	cfg Config

	store      *Store
	seeker     *Seeker
	volume     *VolumeController
	overlay    *OverlayController
	fullscreen *FullscreenController
	progress   *ProgressService
	machine    *Machine

	profileID int

	ctx    context.Context
	cancel context.CancelFunc

	// mu guards the lifecycle flags and the save bookkeeping.
	mu           sync.Mutex
	started      bool
	dispatching  bool
	closed       bool
	saving       bool
	pendingForce bool
	saves        sync.WaitGroup

	stop         chan struct{}
	dispatchDone chan struct{}
	done         chan struct{}
	releaseOnce  sync.Once
}

func New(cfg Config) *Orchestrator {
	if cfg.Clock == nil {
		cfg.Clock = RealClock{}
	}
	if cfg.Notifier == nil {
		cfg.Notifier = discardNotifier{}
	}

	store := NewStore()
	ctx, cancel := context.WithCancel(context.Background())

	o := &Orchestrator{
		cfg:          cfg,
		store:        store,
		seeker:       NewSeeker(store, cfg.Clock, cfg.Notifier),
		volume:       NewVolumeController(store),
		overlay:      NewOverlayController(store, cfg.Clock),
		fullscreen:   NewFullscreenController(store),
		progress:     NewProgressService(store, cfg.API, cfg.Profiles, cfg.Local, cfg.Notifier, cfg.Clock),
		machine:      NewMachine(),
		ctx:          ctx,
		cancel:       cancel,
		stop:         make(chan struct{}),
		dispatchDone: make(chan struct{}),
		done:         make(chan struct{}),
	}

	o.machine.On(EventLoadedMetadata, o.onLoadedMetadata)
	o.machine.On(EventTimeUpdate, o.onTimeUpdate)
	o.machine.On(EventCanPlay, o.onCanPlay)
	o.machine.On(EventPlay, o.onPlay)
	o.machine.On(EventPause, o.onPause)
	o.machine.On(EventProgress, o.onProgress)
	o.machine.On(EventEnded, o.onEnded)
	o.machine.On(EventError, o.onError)

	return o
}

func (o *Orchestrator) Store() *Store                          { return o.store }
func (o *Orchestrator) Seeker() *Seeker                        { return o.seeker }
func (o *Orchestrator) Volume() *VolumeController              { return o.volume }
func (o *Orchestrator) Overlay() *OverlayController            { return o.overlay }
func (o *Orchestrator) Fullscreen() *FullscreenController      { return o.fullscreen }
func (o *Orchestrator) Progress() *ProgressService             { return o.progress }
func (o *Orchestrator) State() State                           { return o.machine.State() }

// Done is closed once the player is torn down, either explicitly or because the backend exited.
func (o *Orchestrator) Done() <-chan struct{} {
	return o.done
}

// InitializePlayer opens the backend for video inside host and starts routing its events.
func (o *Orchestrator) InitializePlayer(ctx context.Context, host *Host, video VideoRef, profileID int) error {
	if host == nil {
		o.cfg.Notifier.Error(startFailedMessage)
		return ErrNoHost
	}

	o.mu.Lock()
	switch {
	case o.closed:
		o.mu.Unlock()
		return ErrClosed
	case o.started:
		o.mu.Unlock()
		return errors.New("player already initialized")
	}
	o.started = true
	o.profileID = profileID
	o.mu.Unlock()

	o.store.SetVideo(video)
	o.store.SetOptimizing(true)

	startVolume := o.cfg.StartVolume
	if startVolume <= 0 {
		startVolume = DefaultVolume
	}

	opts := Options{
		Autoplay:          true,
		Preload:           "auto",
		Controls:          true,
		Fluid:             true,
		OverrideNativeHLS: o.cfg.OverrideNativeHLS,
		StartVolume:       startVolume,
		WindowID:          host.WindowID.OrEmpty(),
	}

	backend, err := o.cfg.Factory.Open(ctx, Source{
		URL:   video.StreamURL,
		Type:  HLSMimeType,
		Title: video.Title,
	}, opts)
	if err != nil {
		o.mu.Lock()
		o.started = false
		o.mu.Unlock()

		o.store.SetOptimizing(false)
		o.cfg.Notifier.Error(startFailedMessage)
		return fmt.Errorf("open player: %w", err)
	}

	// A teardown during Open leaves nobody else to close this backend.
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		if err := backend.Close(); err != nil {
			log.Warnf("close player opened after teardown: %v", err)
		}
		o.store.ResetState()
		return ErrClosed
	}
	o.store.Attach(backend)
	o.store.SetViewInitialized(true)
	o.store.SetVolume(startVolume)
	o.dispatching = true
	o.mu.Unlock()

	log.Infof("player opened for video %d (%s) in %s", video.ID, video.Title, host.Name)

	go o.dispatch(backend.Events())
	return nil
}

func (o *Orchestrator) dispatch(events <-chan Event) {
	defer close(o.dispatchDone)

	for {
		select {
		case <-o.stop:
			return
		case ev, ok := <-events:
			if !ok {
				log.Info("player backend exited")
				o.release()
				return
			}
			o.handle(ev)
		}
	}
}

// handle feeds one backend event through the lifecycle machine.
func (o *Orchestrator) handle(ev Event) {
	o.machine.Fire(ev)
}

func (o *Orchestrator) onLoadedMetadata(ev Event, from State) {
	duration := ev.Duration
	if b, ok := o.store.Backend().Get(); ok && duration <= 0 {
		duration, _ = b.Duration()
	}
	o.store.SetVideoDuration(duration)

	if from != StateUninitialized {
		return
	}

	var start float64
	if o.cfg.Resume {
		start = o.progress.ResumeTime(o.profileID)
	}

	if err := o.seeker.JumpTime(start, true); err != nil {
		log.Warnf("jump to %.2f: %v", start, err)
	}
}

func (o *Orchestrator) onTimeUpdate(ev Event, _ State) {
	o.store.SetProgressTime(ev.Time)
	if o.store.IsScrubbing() {
		return
	}
	o.saveAsync(false)
}

func (o *Orchestrator) onCanPlay(Event, State) {
	o.store.SetOptimizing(false)
}

func (o *Orchestrator) onPlay(Event, State) {
	o.store.SetPlaying(true)
	o.overlay.ResetOverlayTimer(true)
}

func (o *Orchestrator) onPause(Event, State) {
	o.store.SetPlaying(false)
	o.overlay.ResetOverlayTimer(false)
	o.saveAsync(true)
}

func (o *Orchestrator) onProgress(ev Event, _ State) {
	o.store.SetBufferedTime(ev.Buffered)
}

func (o *Orchestrator) onEnded(Event, State) {
	videoID := o.store.Video().ID

	o.saveAsync(true)
	o.WaitSaves()

	o.overlay.ClearOverlayTimer()
	o.store.ResetState()

	if err := o.progress.ClearResume(videoID); err != nil {
		log.Warnf("clear resume fallback for video %d: %v", videoID, err)
	}
}

func (o *Orchestrator) onError(ev Event, _ State) {
	mediaErr := MediaError{Code: ev.Code}
	if b, ok := o.store.Backend().Get(); ok {
		if e := b.Err(); !e.IsZero() {
			mediaErr = e
		}
	}

	o.store.SetPlaying(false)
	o.store.SetOptimizing(false)

	log.Errorf("playback of video %d failed: %v", o.store.Video().ID, mediaErr)
	o.cfg.Notifier.Error(mediaErr.Message())
}

// saveAsync starts a progress save unless one is running. A forced save that arrives
// while another runs is performed right after it.
func (o *Orchestrator) saveAsync(force bool) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	if o.saving {
		if force {
			o.pendingForce = true
		}
		o.mu.Unlock()
		return
	}
	o.saving = true
	o.saves.Add(1)
	o.mu.Unlock()

	videoID := o.store.Video().ID
	last := o.store.LastSaveTime()
	if force {
		last = time.Time{}
	}

	go func() {
		defer o.saves.Done()

		for {
			o.progress.UpdateProgress(o.ctx, o.profileID, videoID, last)

			o.mu.Lock()
			if !o.pendingForce || o.closed {
				o.saving = false
				o.pendingForce = false
				o.mu.Unlock()
				return
			}
			o.pendingForce = false
			o.mu.Unlock()

			last = time.Time{}
		}
	}()
}

// WaitSaves blocks until no progress save is running.
func (o *Orchestrator) WaitSaves() {
	o.saves.Wait()
}

// TogglePlay pauses a playing video and plays a paused one.
func (o *Orchestrator) TogglePlay() {
	b, ok := o.store.Backend().Get()
	if !ok {
		return
	}

	if o.store.IsPlaying() {
		if err := b.Pause(); err != nil {
			log.Warnf("pause: %v", err)
		}
		return
	}

	if err := b.Play(); err != nil {
		log.Errorf("play: %v", err)
		o.cfg.Notifier.Error(resumeFailedMessage)
	}
}

// SetPlaybackRate changes the speed and closes the speed menu.
func (o *Orchestrator) SetPlaybackRate(rate float64) {
	b, ok := o.store.Backend().Get()
	if !ok || rate <= 0 {
		return
	}

	if err := b.SetPlaybackRate(rate); err != nil {
		log.Warnf("set playback rate: %v", err)
		return
	}
	o.store.SetPlaybackRate(rate)
	o.store.SetShowSpeedMenu(false)
}

// Teardown closes the backend, waits for running saves and resets the state.
func (o *Orchestrator) Teardown() {
	o.release()

	o.mu.Lock()
	dispatching := o.dispatching
	o.mu.Unlock()
	if dispatching {
		<-o.dispatchDone
	}
}

func (o *Orchestrator) release() {
	o.releaseOnce.Do(func() {
		close(o.stop)
		o.overlay.ClearOverlayTimer()

		o.mu.Lock()
		o.closed = true
		o.mu.Unlock()

		if b, ok := o.store.Backend().Get(); ok {
			if err := b.Close(); err != nil {
				log.Warnf("close player: %v", err)
			}
		}

		o.saves.Wait()
		o.cancel()

		o.store.ResetState()
		o.store.Detach()
		o.machine.Teardown()

		close(o.done)
	})
}
