package sequence

import "errors"

var (
	// ErrNoStates indicates a machine was constructed with an empty state list.
	ErrNoStates = errors.New("sequence: at least one state is required")

	// ErrDuplicateName indicates two states share a name, breaking name lookup.
	ErrDuplicateName = errors.New("sequence: duplicate state name")

	// ErrPositionOutOfRange indicates an explicit set outside the state list.
	ErrPositionOutOfRange = errors.New("sequence: position out of range")

	// ErrUnknownState indicates a name with no corresponding state.
	ErrUnknownState = errors.New("sequence: unknown state name")
)
