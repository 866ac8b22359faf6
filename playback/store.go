package playback

import (
	"sync"
	"time"

	"github.com/samber/mo"
	"github.com/videoflix/videoflix/util"
)

// Defaults applied by ResetState.
const (
	DefaultVolume       = 0.5
	DefaultPlaybackRate = 1.0
)

// VideoRef identifies the video being played.
type VideoRef struct {
	ID        int
	Title     string
	StreamURL string
}

// PlaybackState is everything the player UI can observe.
type PlaybackState struct {
	Video VideoRef

	IsPlaying    bool
	IsScrubbing  bool
	IsOptimizing bool

	ProgressTime  float64
	VideoDuration float64
	BufferedTime  float64
	LastSeekTime  time.Time
	LastSaveTime  time.Time

	Volume  float64
	IsMuted bool

	IsFullscreen          bool
	ShowOverlay           bool
	ShowSpeedMenu         bool
	ShowVolumeControl     bool
	ShowVolumeTooltip     bool
	ShowSeekTooltip       bool
	VolumeTooltipPosition float64
	SeekTooltipTime       float64
	SeekTooltipPosition   float64
	PlaybackRate          float64

	ViewInitialized bool
}

func defaultState() PlaybackState {
	return PlaybackState{
		Volume:       DefaultVolume,
		ShowOverlay:  true,
		PlaybackRate: DefaultPlaybackRate,
	}
}

// PlaybackPercent is progress relative to duration in [0, 100], or 0 without a duration.
func (s PlaybackState) PlaybackPercent() float64 {
	return percent(s.ProgressTime, s.VideoDuration)
}

func (s PlaybackState) BufferedPercent() float64 {
	return percent(s.BufferedTime, s.VideoDuration)
}

func percent(v, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	return v / duration * 100
}

// Store is the single owner of PlaybackState. Every field changes through a setter.
type Store struct {
	mu      sync.RWMutex
	state   PlaybackState
	backend mo.Option[Backend]
}

func NewStore() *Store {
	return &Store{state: defaultState()}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() PlaybackState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) read(f func(*PlaybackState)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f(&s.state)
}

func (s *Store) write(f func(*PlaybackState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(&s.state)
}

// ResetState restores the defaults. The backend attachment and the view flag are left alone.
func (s *Store) ResetState() {
	s.write(func(st *PlaybackState) {
		view := st.ViewInitialized
		*st = defaultState()
		st.ViewInitialized = view
	})
}

// Backend returns the attached handle. It is borrowed: callers must not close it.
func (s *Store) Backend() mo.Option[Backend] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backend
}

func (s *Store) Attach(b Backend) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backend = mo.Some(b)
}

func (s *Store) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backend = mo.None[Backend]()
	s.state.ViewInitialized = false
}

// CanPlay reports whether a backend is attached and its view is initialized.
func (s *Store) CanPlay() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backend.IsPresent() && s.state.ViewInitialized
}

// CanSeek additionally requires a known duration.
func (s *Store) CanSeek() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backend.IsPresent() && s.state.ViewInitialized && s.state.VideoDuration > 0
}

func (s *Store) PlaybackPercent() float64 { return s.Snapshot().PlaybackPercent() }
func (s *Store) BufferedPercent() float64 { return s.Snapshot().BufferedPercent() }

func (s *Store) Video() (v VideoRef) {
	s.read(func(st *PlaybackState) { v = st.Video })
	return
}

func (s *Store) SetVideo(v VideoRef) {
	s.write(func(st *PlaybackState) { st.Video = v })
}

func (s *Store) IsPlaying() (b bool) {
	s.read(func(st *PlaybackState) { b = st.IsPlaying })
	return
}

func (s *Store) SetPlaying(b bool) {
	s.write(func(st *PlaybackState) { st.IsPlaying = b })
}

func (s *Store) IsScrubbing() (b bool) {
	s.read(func(st *PlaybackState) { b = st.IsScrubbing })
	return
}

func (s *Store) SetScrubbing(b bool) {
	s.write(func(st *PlaybackState) { st.IsScrubbing = b })
}

func (s *Store) IsOptimizing() (b bool) {
	s.read(func(st *PlaybackState) { b = st.IsOptimizing })
	return
}

func (s *Store) SetOptimizing(b bool) {
	s.write(func(st *PlaybackState) { st.IsOptimizing = b })
}

func (s *Store) ProgressTime() (t float64) {
	s.read(func(st *PlaybackState) { t = st.ProgressTime })
	return
}

// SetProgressTime stores t, bounded by [0, duration] once the duration is known.
func (s *Store) SetProgressTime(t float64) {
	s.write(func(st *PlaybackState) {
		if t < 0 {
			t = 0
		}
		if st.VideoDuration > 0 {
			t = util.Clamp(t, 0, st.VideoDuration)
		}
		st.ProgressTime = t
	})
}

func (s *Store) VideoDuration() (d float64) {
	s.read(func(st *PlaybackState) { d = st.VideoDuration })
	return
}

// SetVideoDuration stores d. Negative durations are treated as unknown.
func (s *Store) SetVideoDuration(d float64) {
	s.write(func(st *PlaybackState) {
		if d < 0 {
			d = 0
		}
		st.VideoDuration = d
		if d > 0 && st.ProgressTime > d {
			st.ProgressTime = d
		}
	})
}

func (s *Store) BufferedTime() (t float64) {
	s.read(func(st *PlaybackState) { t = st.BufferedTime })
	return
}

func (s *Store) SetBufferedTime(t float64) {
	s.write(func(st *PlaybackState) { st.BufferedTime = max(t, 0) })
}

func (s *Store) LastSeekTime() (t time.Time) {
	s.read(func(st *PlaybackState) { t = st.LastSeekTime })
	return
}

func (s *Store) SetLastSeekTime(t time.Time) {
	s.write(func(st *PlaybackState) { st.LastSeekTime = t })
}

func (s *Store) LastSaveTime() (t time.Time) {
	s.read(func(st *PlaybackState) { t = st.LastSaveTime })
	return
}

func (s *Store) SetLastSaveTime(t time.Time) {
	s.write(func(st *PlaybackState) { st.LastSaveTime = t })
}

func (s *Store) Volume() (v float64) {
	s.read(func(st *PlaybackState) { v = st.Volume })
	return
}

// SetVolume clamps v to [0, 1].
func (s *Store) SetVolume(v float64) {
	s.write(func(st *PlaybackState) { st.Volume = util.Clamp(v, 0, 1) })
}

func (s *Store) IsMuted() (b bool) {
	s.read(func(st *PlaybackState) { b = st.IsMuted })
	return
}

func (s *Store) SetMuted(b bool) {
	s.write(func(st *PlaybackState) { st.IsMuted = b })
}

func (s *Store) IsFullscreen() (b bool) {
	s.read(func(st *PlaybackState) { b = st.IsFullscreen })
	return
}

func (s *Store) SetFullscreen(b bool) {
	s.write(func(st *PlaybackState) { st.IsFullscreen = b })
}

func (s *Store) ShowOverlay() (b bool) {
	s.read(func(st *PlaybackState) { b = st.ShowOverlay })
	return
}

func (s *Store) SetShowOverlay(b bool) {
	s.write(func(st *PlaybackState) { st.ShowOverlay = b })
}

func (s *Store) ShowSpeedMenu() (b bool) {
	s.read(func(st *PlaybackState) { b = st.ShowSpeedMenu })
	return
}

func (s *Store) SetShowSpeedMenu(b bool) {
	s.write(func(st *PlaybackState) { st.ShowSpeedMenu = b })
}

func (s *Store) ShowVolumeControl() (b bool) {
	s.read(func(st *PlaybackState) { b = st.ShowVolumeControl })
	return
}

func (s *Store) SetShowVolumeControl(b bool) {
	s.write(func(st *PlaybackState) { st.ShowVolumeControl = b })
}

// SetVolumeTooltip shows or hides the volume tooltip at position.
func (s *Store) SetVolumeTooltip(show bool, position float64) {
	s.write(func(st *PlaybackState) {
		st.ShowVolumeTooltip = show
		st.VolumeTooltipPosition = position
	})
}

// SetSeekTooltip shows or hides the seek tooltip for time t at position.
func (s *Store) SetSeekTooltip(show bool, t, position float64) {
	s.write(func(st *PlaybackState) {
		st.ShowSeekTooltip = show
		st.SeekTooltipTime = t
		st.SeekTooltipPosition = position
	})
}

func (s *Store) PlaybackRate() (r float64) {
	s.read(func(st *PlaybackState) { r = st.PlaybackRate })
	return
}

// SetPlaybackRate ignores non-positive rates.
func (s *Store) SetPlaybackRate(r float64) {
	if r <= 0 {
		return
	}
	s.write(func(st *PlaybackState) { st.PlaybackRate = r })
}

func (s *Store) ViewInitialized() (b bool) {
	s.read(func(st *PlaybackState) { b = st.ViewInitialized })
	return
}

func (s *Store) SetViewInitialized(b bool) {
	s.write(func(st *PlaybackState) { st.ViewInitialized = b })
}
