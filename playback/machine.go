package playback

import (
	"sync"

	"github.com/videoflix/videoflix/log"
)

// State is the lifecycle state of a player.
type State int

const (
	StateUninitialized State = iota
	StateReady
	StatePlaying
	StatePaused
	StateEnded
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Hook runs the side effects of an accepted event. from is the state before the transition.
type Hook func(ev Event, from State)

// transitions lists the legal moves. Events missing for a state are ignored.
var transitions = map[State]map[EventType]State{
	StateUninitialized: {
		// mpv reports pause=false before the duration is known.
		EventPlay:           StateUninitialized,
		EventLoadedMetadata: StateReady,
		EventError:          StateErrored,
	},
	StateReady: {
		EventLoadedMetadata: StateReady,
		EventCanPlay:        StateReady,
		EventProgress:       StateReady,
		EventTimeUpdate:     StatePlaying,
		EventPlay:           StatePlaying,
		EventPause:          StatePaused,
		EventEnded:          StateEnded,
		EventError:          StateErrored,
	},
	StatePlaying: {
		EventLoadedMetadata: StatePlaying,
		EventCanPlay:        StatePlaying,
		EventProgress:       StatePlaying,
		EventTimeUpdate:     StatePlaying,
		EventPlay:           StatePlaying,
		EventPause:          StatePaused,
		EventEnded:          StateEnded,
		EventError:          StateErrored,
	},
	StatePaused: {
		EventLoadedMetadata: StatePaused,
		EventCanPlay:        StatePaused,
		EventProgress:       StatePaused,
		EventTimeUpdate:     StatePaused,
		EventPlay:           StatePlaying,
		EventEnded:          StateEnded,
		EventError:          StateErrored,
	},
	StateEnded: {
		EventPlay:           StatePlaying,
		EventLoadedMetadata: StateReady,
		EventError:          StateErrored,
	},
	StateErrored: {
		EventLoadedMetadata: StateReady,
	},
}

// Machine validates backend events against the lifecycle and runs the hooks attached to them.
type Machine struct {
	mu    sync.Mutex
	state State
	hooks map[EventType][]Hook
}

func NewMachine() *Machine {
	return &Machine{hooks: make(map[EventType][]Hook)}
}

// On attaches h to every accepted event of type t.
func (m *Machine) On(t EventType, h Hook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks[t] = append(m.hooks[t], h)
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Fire applies ev and runs its hooks. It reports false when ev is illegal in the current state.
func (m *Machine) Fire(ev Event) bool {
	m.mu.Lock()
	from := m.state
	to, ok := transitions[from][ev.Type]
	if !ok {
		m.mu.Unlock()
		log.Debugf("player: ignoring %s while %s", ev.Type, from)
		return false
	}
	m.state = to
	hooks := m.hooks[ev.Type]
	m.mu.Unlock()

	if from != to {
		log.Debugf("player: %s -> %s on %s", from, to, ev.Type)
	}

	for _, h := range hooks {
		h(ev, from)
	}
	return true
}

// Teardown returns the machine to StateUninitialized without running hooks.
func (m *Machine) Teardown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateUninitialized
}
