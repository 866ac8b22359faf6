// Package color holds the Videoflix terminal palette.
package color

import "github.com/charmbracelet/lipgloss"

func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI colors follow the terminal theme. Plain CLI output uses them.
var (
	Red      = New("1")
	Green    = New("2")
	Yellow   = New("3")
	Blue     = New("4")
	Purple   = New("5")
	Cyan     = New("6")
	Black    = New("8")
	HiRed    = New("9")
	HiPurple = New("13")
)

// Videoflix theme for the full-screen interface, tuned for dark terminals.
var (
	Background = New("#141414")
	Foreground = New("#e5e5e5")
	Muted      = New("#808080")

	// Accent is the Videoflix blue of buttons and selections.
	Accent     = New("#2e3edf")
	AccentSoft = New("#8a93f0")
	// Highlight marks the thing the user is adjusting or about to resume.
	Highlight = New("#ffb703")

	Success    = New("#46d369")
	InProgress = New("#f5c518")
	Processing = New("#fab387")
	Danger     = New("#e50914")
)
