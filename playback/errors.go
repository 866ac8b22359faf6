package playback

import (
	"errors"
	"fmt"
)

var (
	ErrNoHost   = errors.New("player host is not available")
	ErrNotReady = errors.New("player is not ready for seeking")
	ErrClosed   = errors.New("player was torn down")
)

const notReadyMessage = "Player is not ready for seeking"

// Notifier surfaces user-facing messages. It must not block.
type Notifier interface {
	Error(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Error(msg string) { f(msg) }

type discardNotifier struct{}

func (discardNotifier) Error(string) {}

// Media error codes reported by backends.
const (
	MediaErrAborted     = 1
	MediaErrNetwork     = 2
	MediaErrDecode      = 3
	MediaErrUnsupported = 4
)

// MediaError is a playback failure. A zero Code means no error.
type MediaError struct {
	Code   int
	Detail string
}

func (e MediaError) IsZero() bool {
	return e.Code == 0 && e.Detail == ""
}

// Message is the text shown to the user for this error.
func (e MediaError) Message() string {
	switch e.Code {
	case MediaErrAborted:
		return "Playback was aborted."
	case MediaErrNetwork:
		return "A network error interrupted the video download."
	case MediaErrDecode:
		return "The video could not be decoded."
	case MediaErrUnsupported:
		return "The video format is not supported."
	default:
		return "An unexpected playback error occurred."
	}
}

func (e MediaError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("media error %d", e.Code)
	}
	return fmt.Sprintf("media error %d: %s", e.Code, e.Detail)
}
