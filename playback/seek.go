package playback

import (
	"time"

	"github.com/videoflix/videoflix/log"
	"github.com/videoflix/videoflix/util"
)

const (
	// JumpInterval is the debounce window of JumpTime.
	JumpInterval = 500 * time.Millisecond
	// DefaultKeyboardSeek is the step of a keyboard seek in seconds.
	DefaultKeyboardSeek = 10.0
)

const resumeFailedMessage = "Playback could not be resumed."

// Direction of a keyboard seek.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Pointer is a position in screen coordinates.
type Pointer struct {
	X, Y float64
}

// Touch carries the active touch points of a gesture. A touch end usually has none.
type Touch struct {
	Points []Pointer
}

// Rect is the bounding box of the seek track.
type Rect struct {
	Left, Top, Width, Height float64
}

// Fraction maps x onto the track, in [0, 1].
func (r Rect) Fraction(x float64) float64 {
	if r.Width <= 0 {
		return 0
	}
	return util.Clamp((x-r.Left)/r.Width, 0, 1)
}

// Seeker turns keyboard and pointer input into backend seeks.
type Seeker struct {
	store  *Store
	clock  Clock
	notify Notifier
	gate   *Gate
}

func NewSeeker(store *Store, clock Clock, notify Notifier) *Seeker {
	if notify == nil {
		notify = discardNotifier{}
	}
	return &Seeker{
		store:  store,
		clock:  clock,
		notify: notify,
		gate:   NewGate(JumpInterval),
	}
}

// currentTime prefers the backend position over the stored one.
func (s *Seeker) currentTime(b Backend) float64 {
	if t, err := b.CurrentTime(); err == nil {
		return t
	}
	return s.store.ProgressTime()
}

func (s *Seeker) seek(b Backend, t float64) {
	if err := b.Seek(t); err != nil {
		log.Warnf("seek to %.2f: %v", t, err)
		return
	}
	s.store.SetProgressTime(t)
}

// resume restarts playback after a seek. Failures are surfaced, never returned.
func (s *Seeker) resume(b Backend) {
	if err := b.Play(); err != nil {
		log.Errorf("resume after seek: %v", err)
		s.notify.Error(resumeFailedMessage)
	}
}

// SeekBy moves the position by delta seconds, staying within [0, duration-1].
func (s *Seeker) SeekBy(delta float64) {
	b, ok := s.store.Backend().Get()
	if !ok || !s.store.CanSeek() {
		return
	}

	upper := max(s.store.VideoDuration()-1, 0)
	s.seek(b, util.Clamp(s.currentTime(b)+delta, 0, upper))
}

// SeekTo moves to t, bounded by [0, duration].
func (s *Seeker) SeekTo(t float64) {
	b, ok := s.store.Backend().Get()
	if !ok || !s.store.CanSeek() {
		return
	}

	s.seek(b, util.Clamp(t, 0, s.store.VideoDuration()))
}

// SeekToPercentage moves to fraction p of the duration, p in [0, 1].
func (s *Seeker) SeekToPercentage(p float64) {
	s.SeekTo(p * s.store.VideoDuration())
}

// HandleKeyboardSeek seeks seconds in dir. A non-positive step uses DefaultKeyboardSeek.
func (s *Seeker) HandleKeyboardSeek(dir Direction, seconds float64) {
	if seconds <= 0 {
		seconds = DefaultKeyboardSeek
	}
	s.SeekBy(float64(dir) * seconds)
}

// ScrubStart enters scrubbing mode and pauses the backend.
func (s *Seeker) ScrubStart() {
	b, ok := s.store.Backend().Get()
	if !ok || !s.store.CanSeek() {
		return
	}

	s.store.SetScrubbing(true)
	if err := b.Pause(); err != nil {
		log.Warnf("pause for scrubbing: %v", err)
	}
}

// Scrubbing follows the pointer along the track without resuming playback.
func (s *Seeker) Scrubbing(p Pointer, track Rect) {
	b, ok := s.store.Backend().Get()
	if !ok || !s.store.IsScrubbing() {
		return
	}

	t := track.Fraction(p.X) * s.store.VideoDuration()
	s.seek(b, t)
	s.store.SetSeekTooltip(true, t, p.X-track.Left)
}

func (s *Seeker) ScrubbingTouch(touch Touch, track Rect) {
	if len(touch.Points) == 0 {
		return
	}
	s.Scrubbing(touch.Points[0], track)
}

// ScrubEnd seeks to the release position and restarts playback.
func (s *Seeker) ScrubEnd(p Pointer, track Rect) {
	s.scrubEnd(func() float64 {
		return track.Fraction(p.X) * s.store.VideoDuration()
	})
}

// ScrubEndTouch ends at the last touch point, or at the current position when the touch carries none.
func (s *Seeker) ScrubEndTouch(touch Touch, track Rect) {
	s.scrubEnd(func() float64 {
		if len(touch.Points) == 0 {
			return s.store.ProgressTime()
		}
		return track.Fraction(touch.Points[0].X) * s.store.VideoDuration()
	})
}

func (s *Seeker) scrubEnd(target func() float64) {
	b, ok := s.store.Backend().Get()
	if !ok || !s.store.IsScrubbing() {
		return
	}

	s.store.SetScrubbing(false)
	s.store.SetSeekTooltip(false, 0, 0)
	s.seek(b, target())
	s.resume(b)
}

// ProgressClick seeks once to the clicked position.
func (s *Seeker) ProgressClick(p Pointer, track Rect) {
	s.SeekTo(track.Fraction(p.X) * s.store.VideoDuration())
}

// JumpTime is the debounced seek used while loading. With isInit the target is seconds itself,
// otherwise an offset from the current position.
func (s *Seeker) JumpTime(seconds float64, isInit bool) error {
	b, ok := s.store.Backend().Get()
	if !ok || !s.store.CanPlay() {
		s.notify.Error(notReadyMessage)
		return ErrNotReady
	}

	now := s.clock.Now()
	if !s.gate.TryAcquire(now) {
		return nil
	}

	target := seconds
	if !isInit {
		target = s.store.ProgressTime() + seconds
	}
	if d := s.store.VideoDuration(); d > 0 {
		target = util.Clamp(target, 0, d)
	} else {
		target = max(target, 0)
	}

	s.seek(b, target)
	s.store.SetLastSeekTime(now)

	if s.store.IsPlaying() {
		s.resume(b)
	}
	return nil
}
