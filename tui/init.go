package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts loading the profiles. The first screen is picked once they arrive.
func (b *statefulBubble) Init() tea.Cmd {
	b.setState(loadingState)
	b.loading = true
	b.progressStatus = "Loading profiles"
	return tea.Batch(b.spinnerC.Tick, b.loadProfiles())
}
