// Package style provides a functional API for composing and applying lipgloss-based TUI styles.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/videoflix/videoflix/color"
)

// New returns an empty lipgloss.Style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Colored initializes a new style with the specified foreground and background colors.
func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// Fg returns a rendering function that applies the foreground color c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(c, "").Render(s) }
}

// Truncate returns a rendering function that constrains the output to max cells.
func Truncate(max int) func(string) string {
	return func(s string) string { return New().Width(max).MaxHeight(1).Render(s) }
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

// Title renders a screen heading.
var Title = func(s string) string {
	return Colored(color.Foreground, color.Accent).Padding(0, 1).Render(s)
}

// ErrorTitle is Title in error colors.
var ErrorTitle = func(s string) string {
	return Colored(color.Foreground, color.Danger).Padding(0, 1).Render(s)
}

// Tag returns a rendering function that puts a string in a colored, padded block.
func Tag(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(fg, bg).Padding(0, 1).Render(s) }
}
