package state

import (
	"sync/atomic"
)

// State captures the lifecycle of a node process: Initializing, Running, or
// Terminated.
type State uint32

const (
	// Initializing is the state in which a node waits for the init message.
	// It is left after exactly one successful handshake.
	Initializing State = iota

	// Running is the state in which a node reads one line at a time and hands
	// each decoded message to its handler.
	Running

	// Terminated is the state reached at end of input or on the first fatal
	// error. Nothing is read or written afterwards.
	Terminated
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case Initializing:
		return "Initializing"
	case Running:
		return "Running"
	case Terminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Manager wraps a State with get and set methods. The dispatch loop is the
// only writer; readers such as tests may observe it from other goroutines.
type Manager struct {
	state State
}

// GetState returns the current state.
func (b *Manager) GetState() State {
	stateAddr := (*uint32)(&b.state)
	return State(atomic.LoadUint32(stateAddr))
}

// SetState sets the state.
func (b *Manager) SetState(s State) {
	stateAddr := (*uint32)(&b.state)
	atomic.StoreUint32(stateAddr, uint32(s))
}
