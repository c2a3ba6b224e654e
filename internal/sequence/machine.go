package sequence

import (
	"fmt"
	"time"
)

// None is the machine position when no state is active: before the first
// transition, or after stepping past either end of the sequence.
const None = -1

// State is one stage in the sequence. Tag is a small stable identifier
// (the enum value states are dispatched on), Name the lookup key used by
// operator commands, Run the function executed on every evaluation while
// the state is current.
type State struct {
	Tag         int
	Name        string
	Description string
	Run         func()
}

// TransitionFunc is called after every successful position change with the
// old and new positions (None for "no state").
type TransitionFunc func(from, to int)

// Machine steps an ordered state list. The state list is fixed at
// construction; only the position moves.
//
// Not safe for concurrent use.
type Machine struct {
	states         []State
	byName         map[string]int // Name → position, built at construction
	position       int
	lastTransition time.Time
	onTransition   TransitionFunc
}

// NewMachine creates a machine over the given ordered states, parked at
// None. State names must be unique; they are the operator-facing keys for
// explicit jumps.
func NewMachine(states []State) (*Machine, error) {
	if len(states) == 0 {
		return nil, ErrNoStates
	}

	byName := make(map[string]int, len(states))
	for i, s := range states {
		if _, exists := byName[s.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, s.Name)
		}
		byName[s.Name] = i
	}

	return &Machine{
		states:         states,
		byName:         byName,
		position:       None,
		lastTransition: time.Now(),
	}, nil
}

// OnTransition registers the hook fired after every position change.
// Passing nil clears it.
func (m *Machine) OnTransition(fn TransitionFunc) {
	m.onTransition = fn
}

// Position returns the current position, None when no state is active.
func (m *Machine) Position() int {
	return m.position
}

// Current returns the active state, or nil when the machine is at None.
func (m *Machine) Current() *State {
	if m.position == None {
		return nil
	}
	return &m.states[m.position]
}

// Len returns the number of states in the sequence.
func (m *Machine) Len() int {
	return len(m.states)
}

// States returns a copy of the state list for display purposes.
func (m *Machine) States() []State {
	out := make([]State, len(m.states))
	copy(out, m.states)
	return out
}

// LastTransition returns the time of the most recent position change.
func (m *Machine) LastTransition() time.Time {
	return m.lastTransition
}

// SetPosition moves the machine to an explicit position: None or a valid
// index. Anything else is an error and the position is left untouched:
// an out-of-range request is a caller bug that must surface, not be
// clamped away.
//
// Every successful call is a transition, including re-entry into the
// current position.
func (m *Machine) SetPosition(position int) error {
	if position != None && (position < 0 || position >= len(m.states)) {
		return fmt.Errorf("%w: %d (sequence has %d states)", ErrPositionOutOfRange, position, len(m.states))
	}
	m.transition(position)
	return nil
}

// SetByName moves the machine to the state with the given name.
// Unknown names are an error; the position is left untouched.
func (m *Machine) SetByName(name string) error {
	position, ok := m.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownState, name)
	}
	m.transition(position)
	return nil
}

// Next advances one state: None enters the first state, the last state
// parks at None.
func (m *Machine) Next() {
	switch {
	case m.position == None:
		m.transition(0)
	case m.position >= len(m.states)-1:
		m.transition(None)
	default:
		m.transition(m.position + 1)
	}
}

// Previous steps back one state, mirroring Next: the first state parks at
// None, None re-enters the last state.
func (m *Machine) Previous() {
	switch {
	case m.position == None:
		m.transition(len(m.states) - 1)
	case m.position == 0:
		m.transition(None)
	default:
		m.transition(m.position - 1)
	}
}

// Evaluate runs the current state's Run function. A machine at None, or a
// state without a Run function, evaluates to a no-op.
func (m *Machine) Evaluate() {
	current := m.Current()
	if current == nil || current.Run == nil {
		return
	}
	current.Run()
}

// transition applies a validated position change, stamps the time and
// fires the hook.
func (m *Machine) transition(to int) {
	from := m.position
	m.position = to
	m.lastTransition = time.Now()
	if m.onTransition != nil {
		m.onTransition(from, to)
	}
}
