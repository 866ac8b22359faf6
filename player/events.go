package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/videoflix/videoflix/log"
	"github.com/videoflix/videoflix/playback"
)

// observed lists the properties whose changes become lifecycle events.
var observed = []string{
	"duration",
	"time-pos",
	"pause",
	"eof-reached",
	"demuxer-cache-time",
}

// rawEvent is one line of mpv's event stream.
type rawEvent struct {
	Event     string `json:"event"`
	Name      string `json:"name"`
	Data      any    `json:"data"`
	Reason    string `json:"reason"`
	FileError string `json:"file_error"`
}

// eventListener reads mpv's event stream on its own connection and translates it.
type eventListener struct {
	conn   net.Conn
	events chan playback.Event
	onErr  func(playback.MediaError)

	closeOnce sync.Once
	done      chan struct{}
}

// listen subscribes to the observed properties and starts the read loop.
func listen(socketPath string, onErr func(playback.MediaError)) (*eventListener, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("event listener connect: %w", err)
	}

	reader := bufio.NewReader(conn)
	for i, name := range observed {
		if _, err := roundTrip(conn, reader, []any{"observe_property", i + 1, name}); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("observe %s: %w", name, err)
		}
	}

	l := &eventListener{
		conn:   conn,
		events: make(chan playback.Event, 64),
		onErr:  onErr,
		done:   make(chan struct{}),
	}

	go l.readLoop(reader)

	log.Infof("mpv event listener started on %s (observing: %s)", socketPath, strings.Join(observed, ", "))
	return l, nil
}

func (l *eventListener) readLoop(r *bufio.Reader) {
	defer close(l.events)

	for {
		line, err := r.ReadBytes('\n')
		if err != nil {
			select {
			case <-l.done:
			default:
				log.Debugf("mpv event stream closed: %v", err)
			}
			return
		}

		var raw rawEvent
		if err := json.Unmarshal(line, &raw); err != nil || raw.Event == "" {
			continue
		}

		ev, ok := translate(raw)
		if !ok {
			continue
		}

		if ev.Type == playback.EventError && l.onErr != nil {
			l.onErr(mediaError(raw.FileError))
		}

		select {
		case l.events <- ev:
		case <-l.done:
			return
		}
	}
}

func (l *eventListener) stop() {
	l.closeOnce.Do(func() {
		close(l.done)
		_ = l.conn.Close()
	})
}

// translate maps an mpv event to a lifecycle event.
func translate(raw rawEvent) (playback.Event, bool) {
	switch raw.Event {
	case "property-change":
		return translateProperty(raw.Name, raw.Data)
	case "playback-restart":
		return playback.Event{Type: playback.EventCanPlay}, true
	case "end-file":
		switch raw.Reason {
		case "eof":
			return playback.Event{Type: playback.EventEnded}, true
		case "error":
			return playback.Event{Type: playback.EventError, Code: mediaError(raw.FileError).Code}, true
		}
	}
	return playback.Event{}, false
}

func translateProperty(name string, data any) (playback.Event, bool) {
	switch name {
	case "duration":
		if d, ok := data.(float64); ok && d > 0 {
			return playback.Event{Type: playback.EventLoadedMetadata, Duration: d}, true
		}
	case "time-pos":
		if t, ok := data.(float64); ok {
			return playback.Event{Type: playback.EventTimeUpdate, Time: t}, true
		}
	case "pause":
		if paused, ok := data.(bool); ok {
			if paused {
				return playback.Event{Type: playback.EventPause}, true
			}
			return playback.Event{Type: playback.EventPlay}, true
		}
	case "eof-reached":
		if eof, ok := data.(bool); ok && eof {
			return playback.Event{Type: playback.EventEnded}, true
		}
	case "demuxer-cache-time":
		if t, ok := data.(float64); ok {
			return playback.Event{Type: playback.EventProgress, Buffered: t}, true
		}
	}
	return playback.Event{}, false
}

// mediaError classifies mpv's file_error text into a media error code.
func mediaError(fileError string) playback.MediaError {
	text := strings.ToLower(fileError)

	code := 0
	switch {
	case text == "":
	case strings.Contains(text, "abort"), strings.Contains(text, "interrupted"):
		code = playback.MediaErrAborted
	case strings.Contains(text, "network"), strings.Contains(text, "http"),
		strings.Contains(text, "connection"), strings.Contains(text, "timed out"):
		code = playback.MediaErrNetwork
	case strings.Contains(text, "decod"), strings.Contains(text, "no audio or video"):
		code = playback.MediaErrDecode
	case strings.Contains(text, "unrecognized"), strings.Contains(text, "format"),
		strings.Contains(text, "unsupported"):
		code = playback.MediaErrUnsupported
	}

	return playback.MediaError{Code: code, Detail: fileError}
}
