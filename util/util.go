// Package util provides small domain-agnostic helpers shared by the CLI, the TUI and the player controls.
package util

import (
	"fmt"
	"math"
	"os"

	"github.com/videoflix/videoflix/filesystem"
	"golang.org/x/exp/constraints"
	"golang.org/x/term"
)

// Clamp bounds v to [lo, hi]. When hi < lo the result is lo.
func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Quantify returns "1 video" / "3 videos".
func Quantify(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// FormatTimestamp renders seconds as m:ss, or h:mm:ss past the hour. Negative and NaN inputs render as 0:00.
func FormatTimestamp(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}

	total := int(seconds)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// TerminalSize retrieves the current character dimensions of the terminal window.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// IsTerminal reports whether stdin is attached to a terminal, which interactive prompts require.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Delete removes a file or a directory tree through the virtualized filesystem.
func Delete(path string) error {
	fs := filesystem.API()
	stat, err := fs.Stat(path)
	if err != nil {
		return err
	}

	if stat.IsDir() {
		return fs.RemoveAll(path)
	}
	return fs.Remove(path)
}
