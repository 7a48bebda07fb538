package status

import (
	"fmt"
	"slices"
	"sync"

	"github.com/matheus3301/papirus/internal/action"
	"github.com/matheus3301/papirus/internal/bus"
)

// State represents an application loop lifecycle state.
type State string

const (
	Initializing State = "INITIALIZING"
	Running      State = "RUNNING"
	Suspended    State = "SUSPENDED"
	Exiting      State = "EXITING"
)

// validTransitions defines allowed state transitions.
var validTransitions = map[State][]State{
	Initializing: {Running, Exiting},
	Running:      {Suspended, Exiting},
	Suspended:    {Running, Exiting},
	Exiting:      {},
}

// Machine tracks and enforces application lifecycle transitions.
type Machine struct {
	mu      sync.RWMutex
	current State
	sender  bus.Sender
}

// NewMachine creates a new state machine starting in Initializing state.
// Transitions are announced on sender when it is non-nil.
func NewMachine(sender bus.Sender) *Machine {
	return &Machine{
		current: Initializing,
		sender:  sender,
	}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Is reports whether the machine is in state s.
func (m *Machine) Is(s State) bool {
	return m.Current() == s
}

// Transition attempts to move to a new state. Returns error if transition is invalid.
func (m *Machine) Transition(to State) error {
	m.mu.Lock()
	allowed := validTransitions[m.current]
	if !slices.Contains(allowed, to) {
		from := m.current
		m.mu.Unlock()
		return fmt.Errorf("invalid transition from %s to %s", from, to)
	}
	from := m.current
	m.current = to
	m.mu.Unlock()

	if m.sender != nil {
		m.sender.Send(action.StateChanged{From: string(from), To: string(to)})
	}
	return nil
}
