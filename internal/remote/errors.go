package remote

import "errors"

// Sentinel errors returned by the remote package.
var (
	// ErrInvalidName indicates a variable name that is empty or contains
	// MQTT topic metacharacters.
	ErrInvalidName = errors.New("remote: invalid variable name")

	// ErrDuplicateName indicates two variables registered under one name.
	ErrDuplicateName = errors.New("remote: duplicate variable name")

	// ErrUnknownVariable indicates a write to a name no variable carries.
	ErrUnknownVariable = errors.New("remote: unknown variable")

	// ErrReadOnly indicates a remote write to a variable that does not
	// accept overrides.
	ErrReadOnly = errors.New("remote: variable does not accept remote writes")

	// ErrBadPayload indicates an inbound payload that did not parse as the
	// variable's value type.
	ErrBadPayload = errors.New("remote: malformed payload")

	// ErrNilClient indicates a binding created without an MQTT client.
	ErrNilClient = errors.New("remote: nil MQTT client")
)
