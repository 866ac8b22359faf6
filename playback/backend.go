// Package playback is the player control layer: it keeps the observable playback state,
// drives a Backend from user input and persists watch progress.
package playback

import "context"

// EventType names a backend lifecycle event.
type EventType int

const (
	EventLoadedMetadata EventType = iota + 1
	EventTimeUpdate
	EventCanPlay
	EventPlay
	EventPause
	EventEnded
	EventError
	EventProgress
)

func (e EventType) String() string {
	switch e {
	case EventLoadedMetadata:
		return "loadedmetadata"
	case EventTimeUpdate:
		return "timeupdate"
	case EventCanPlay:
		return "canplay"
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	case EventProgress:
		return "progress"
	default:
		return "unknown"
	}
}

// Event is emitted by a Backend. Only the fields relevant to Type are set.
type Event struct {
	Type     EventType
	Time     float64
	Duration float64
	Buffered float64
	Code     int
}

// Backend is an opened media player. Implementations are safe for concurrent use.
type Backend interface {
	Play() error
	Pause() error
	Paused() (bool, error)
	CurrentTime() (float64, error)
	Seek(seconds float64) error
	Duration() (float64, error)
	Volume() (float64, error)
	SetVolume(v float64) error
	Muted() (bool, error)
	SetMuted(muted bool) error
	PlaybackRate() (float64, error)
	SetPlaybackRate(rate float64) error

	// Events is closed when the backend exits.
	Events() <-chan Event
	// Err returns the last media error, or a zero MediaError.
	Err() MediaError
	Close() error
}

// Fullscreener is the standard fullscreen entry point.
type Fullscreener interface {
	SetFullscreen(on bool) error
}

// LegacyFullscreener toggles fullscreen through an alias property.
type LegacyFullscreener interface {
	SetFS(on bool) error
}

// FullscreenCycler only knows how to flip the current fullscreen mode.
type FullscreenCycler interface {
	CycleFullscreen() error
}

// Source is the stream to open.
type Source struct {
	URL   string
	Type  string
	Title string
}

// HLSMimeType is the source type of Videoflix streams.
const HLSMimeType = "application/x-mpegURL"

// Options are the fixed construction options of a player.
type Options struct {
	Autoplay          bool
	Preload           string
	Controls          bool
	Fluid             bool
	OverrideNativeHLS bool
	StartVolume       float64
	// WindowID embeds the player into an existing window when set.
	WindowID int
}

// Factory opens backends.
type Factory interface {
	Open(ctx context.Context, src Source, opts Options) (Backend, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(ctx context.Context, src Source, opts Options) (Backend, error)

func (f FactoryFunc) Open(ctx context.Context, src Source, opts Options) (Backend, error) {
	return f(ctx, src, opts)
}
