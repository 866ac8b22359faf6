// Package tui is the interactive terminal client: profile pick, video list, video details and the player controls.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/videoflix/videoflix/api"
	"github.com/videoflix/videoflix/internal/ui"
	"github.com/videoflix/videoflix/session"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// ProfileID skips the profile picker when set.
	ProfileID int
	// Query pre-filters the video list.
	Query string
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	notifier := &ui.Notifier{}
	bubble := newBubble(options, api.Default(), session.Default(), notifier)

	program := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithMouseCellMotion())
	notifier.Attach(program)

	_, err := program.Run()
	bubble.teardownPlayer()
	return err
}
