package player

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/videoflix/videoflix/constant"
	"github.com/videoflix/videoflix/log"
	"github.com/videoflix/videoflix/playback"
	"github.com/videoflix/videoflix/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// MPV drives an mpv process over its JSON-IPC socket. It implements playback.Backend.
type MPV struct {
	binary     string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	listener   *eventListener

	mu sync.Mutex // serializes IPC commands

	errMu    sync.Mutex
	mediaErr playback.MediaError

	closeOnce sync.Once
}

// NewMPV creates a player for the given executable (mpv when empty). Nothing is started yet.
func NewMPV(binary string) *MPV {
	if binary == "" {
		binary = "mpv"
	}
	return &MPV{binary: binary, exited: make(chan struct{})}
}

// Start launches mpv for src and subscribes to its events.
func (m *MPV) Start(ctx context.Context, src playback.Source, opts playback.Options) error {
	target, err := sanitizeMediaTarget(src.URL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("%s-%x.sock", constant.Videoflix, randomBytes))
	}

	m.cmd = exec.Command(m.binary, buildArgs(m.socketPath, target, src.Title, opts)...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(ctx); err != nil {
		m.kill("socket never became ready")
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	listener, err := listen(m.socketPath, m.setErr)
	if err != nil {
		m.kill("event listener failed")
		return err
	}
	m.listener = listener

	return nil
}

// buildArgs maps the player options onto mpv flags. The user's mpv.conf stays in charge of video output.
func buildArgs(socketPath, target, title string, opts playback.Options) []string {
	title = sanitizeTitle(title)

	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", socketPath),
		fmt.Sprintf("--force-media-title=%s", title),
		fmt.Sprintf("--title=%s", title),
		"--force-window=yes",
		"--keep-open=yes",
		"--idle=yes",
	}

	if !opts.Autoplay {
		args = append(args, "--pause")
	}

	if opts.Preload == "auto" {
		args = append(args, "--cache=yes")
	}

	if opts.Controls {
		args = append(args, "--osc=yes")
	} else {
		args = append(args, "--no-osc")
	}

	if opts.Fluid {
		args = append(args, "--autofit-larger=90%x90%")
	}

	if opts.OverrideNativeHLS {
		args = append(args, "--hls-bitrate=max")
	}

	if opts.StartVolume > 0 {
		args = append(args, fmt.Sprintf("--volume=%d", int(opts.StartVolume*100+0.5)))
	}

	if opts.WindowID != 0 {
		args = append(args, fmt.Sprintf("--wid=%d", opts.WindowID))
	}

	return append(args, target)
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket(ctx context.Context) error {
	for i := 0; i < socketWaitRetries; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.exited:
			return errors.New("mpv exited before socket was ready")
		case <-time.After(socketWaitDelay):
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPV) kill(reason string) {
	if m.cmd == nil || m.cmd.Process == nil {
		return
	}

	select {
	case <-m.exited:
	default:
		log.Warnf("killing mpv: %s", reason)
		_ = killProcess(m.cmd)
	}
}

// Exited is closed when the mpv process exits.
func (m *MPV) Exited() <-chan struct{} {
	return m.exited
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

func (m *MPV) Events() <-chan playback.Event {
	if m.listener == nil {
		ch := make(chan playback.Event)
		close(ch)
		return ch
	}
	return m.listener.events
}

func (m *MPV) Err() playback.MediaError {
	m.errMu.Lock()
	defer m.errMu.Unlock()
	return m.mediaErr
}

func (m *MPV) setErr(e playback.MediaError) {
	m.errMu.Lock()
	defer m.errMu.Unlock()
	m.mediaErr = e
}

func (m *MPV) Play() error {
	return m.set("pause", false)
}

func (m *MPV) Pause() error {
	return m.set("pause", true)
}

func (m *MPV) Paused() (bool, error) {
	return m.getBool("pause")
}

func (m *MPV) CurrentTime() (float64, error) {
	return m.getFloat("time-pos")
}

// Seek moves playback to the given absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand("seek", seconds, "absolute")
	return err
}

func (m *MPV) Duration() (float64, error) {
	return m.getFloat("duration")
}

// Volume is reported in [0, 1]; mpv itself uses percent.
func (m *MPV) Volume() (float64, error) {
	v, err := m.getFloat("volume")
	return v / 100, err
}

func (m *MPV) SetVolume(v float64) error {
	return m.set("volume", v*100)
}

func (m *MPV) Muted() (bool, error) {
	return m.getBool("mute")
}

func (m *MPV) SetMuted(muted bool) error {
	return m.set("mute", muted)
}

func (m *MPV) PlaybackRate() (float64, error) {
	return m.getFloat("speed")
}

func (m *MPV) SetPlaybackRate(rate float64) error {
	return m.set("speed", rate)
}

func (m *MPV) SetFullscreen(on bool) error {
	return m.set("fullscreen", on)
}

// Close quits mpv, killing it when it does not exit in time, and removes the socket.
func (m *MPV) Close() error {
	m.closeOnce.Do(func() {
		if m.socketPath == "" {
			return
		}

		if m.cmd != nil {
			_, _ = m.sendCommand("quit")

			select {
			case <-m.exited:
			case <-time.After(quitTimeout):
				_ = killProcess(m.cmd)
				<-m.exited
			}
		}

		if m.listener != nil {
			m.listener.stop()
		}

		_ = os.Remove(m.socketPath)
	})
	return nil
}

func (m *MPV) set(property string, value any) error {
	_, err := m.sendCommand("set_property", property, value)
	return err
}

func (m *MPV) getFloat(name string) (float64, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return 0, err
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}
	return val, nil
}

func (m *MPV) getBool(name string) (bool, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return false, err
	}

	val, ok := data.(bool)
	if !ok {
		return false, fmt.Errorf("property %s: expected bool, got %T", name, data)
	}
	return val, nil
}

// sanitizeMediaTarget validates that a stream URL is safe to pass to mpv as a positional argument.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", errors.New("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", errors.New("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", errors.New("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

// sanitizeTitle flattens the title to a single line.
func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
