package status

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/matheus3301/zapdesk/internal/bus"
)

// State is the console's connectivity state, derived from the admin
// socket lifecycle.
type State string

const (
	Starting     State = "STARTING"
	Live         State = "LIVE"
	Reconnecting State = "RECONNECTING"
	Offline      State = "OFFLINE"
)

var validTransitions = map[State][]State{
	Starting:     {Live, Reconnecting, Offline},
	Live:         {Reconnecting, Offline},
	Reconnecting: {Live, Offline},
	Offline:      {Starting, Reconnecting, Live},
}

// Machine tracks and enforces connectivity state transitions.
type Machine struct {
	mu      sync.RWMutex
	current State
	bus     *bus.Bus
}

// NewMachine creates a state machine in the Starting state.
func NewMachine(b *bus.Bus) *Machine {
	return &Machine{
		current: Starting,
		bus:     b,
	}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Transition attempts to move to a new state. Returns an error when
// the transition is not allowed.
func (m *Machine) Transition(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == to {
		return nil
	}
	allowed := validTransitions[m.current]
	if !slices.Contains(allowed, to) {
		return fmt.Errorf("invalid transition from %s to %s", m.current, to)
	}
	from := m.current
	m.current = to
	if m.bus != nil {
		m.bus.Publish(bus.Event{
			Kind:      KindChanged,
			Timestamp: time.Now(),
			Payload:   Change{From: from, To: to},
		})
	}
	return nil
}

// KindChanged is the bus event kind for connectivity changes.
const KindChanged = "status.changed"

// Change is the payload for connectivity change events.
type Change struct {
	From State
	To   State
}

// Track subscribes to socket events and drives the machine: the first
// successful open moves to Live, a drop moves to Reconnecting, and
// every later reopen back to Live. Returns an unsubscribe func.
func Track(m *Machine, b *bus.Bus) func() {
	ch, unsub := b.Subscribe("socket.", 16)
	go func() {
		for evt := range ch {
			name, _ := evt.Payload.(string)
			if name != "admin" {
				continue
			}
			switch evt.Kind {
			case bus.KindSocketUp:
				_ = m.Transition(Live)
			case bus.KindSocketDown:
				_ = m.Transition(Reconnecting)
			}
		}
	}()
	return unsub
}
