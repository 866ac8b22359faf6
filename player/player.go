// Package player launches external media players and exposes them as playback backends.
// The only engine is mpv, driven through its JSON-IPC interface.
package player

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/spf13/viper"
	"github.com/videoflix/videoflix/key"
	"github.com/videoflix/videoflix/playback"
)

// Launcher opens mpv players. It implements playback.Factory.
type Launcher struct {
	Binary string
}

// DefaultLauncher uses the configured player executable.
func DefaultLauncher() Launcher {
	return Launcher{Binary: viper.GetString(key.Player)}
}

func (l Launcher) Open(ctx context.Context, src playback.Source, opts playback.Options) (playback.Backend, error) {
	m := NewMPV(l.Binary)
	if err := m.Start(ctx, src, opts); err != nil {
		return nil, err
	}
	return m, nil
}

// Available reports whether the player executable can be found.
func (l Launcher) Available() error {
	binary := l.Binary
	if binary == "" {
		binary = "mpv"
	}

	if _, err := exec.LookPath(binary); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", binary, err)
	}
	return nil
}
