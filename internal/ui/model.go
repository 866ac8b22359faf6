// Package ui holds the transient error notification shown at the bottom of the terminal views.
package ui

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/videoflix/videoflix/color"
)

// ClearAfter is how long a notification stays on screen.
const ClearAfter = 5000 * time.Millisecond

// Model holds the notification currently on screen.
type Model struct {
	notification string
	notifiedAt   time.Time
	generation   int
}

// NotifyMsg shows a notification.
type NotifyMsg string

// ClearNotificationMsg clears the notification it was scheduled for.
// A newer notification bumps the generation, so an older clear is ignored.
type ClearNotificationMsg struct {
	generation int
}

// Notify returns a tea.Cmd that shows msg.
func Notify(msg string) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg(msg)
	}
}

func clearNotification(generation int) tea.Cmd {
	return tea.Tick(ClearAfter, func(time.Time) tea.Msg {
		return ClearNotificationMsg{generation: generation}
	})
}

// Update processes incoming messages to modify the notification state.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotifyMsg:
		m.generation++
		m.notification = string(msg)
		m.notifiedAt = time.Now()
		return clearNotification(m.generation)
	case ClearNotificationMsg:
		if msg.generation == m.generation {
			m.notification = ""
		}
	}
	return nil
}

// Current returns the notification on screen, if any.
func (m *Model) Current() string {
	return m.notification
}

// View appends the notification to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	notifier := lipgloss.NewStyle().Foreground(color.Red).Render(m.notification)
	lines[len(lines)-1] = lines[len(lines)-1] + "  " + notifier
	return strings.Join(lines, "\n")
}

// Notifier forwards player errors to a running bubbletea program.
// Messages sent before a program is attached are buffered.
type Notifier struct {
	mu      sync.Mutex
	program *tea.Program
	pending []string
}

// Attach starts forwarding to p and flushes anything buffered.
func (n *Notifier) Attach(p *tea.Program) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.program = p
	for _, msg := range n.pending {
		p.Send(NotifyMsg(msg))
	}
	n.pending = nil
}

// Error implements playback.Notifier.
func (n *Notifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.program == nil {
		n.pending = append(n.pending, msg)
		return
	}
	n.program.Send(NotifyMsg(msg))
}

// Pending returns the buffered messages.
func (n *Notifier) Pending() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.pending...)
}
