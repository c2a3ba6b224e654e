package remote

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Capabilities selects the externally visible behaviour of a process
// variable. The zero value is a purely local variable: the outside world
// can neither see nor change it.
type Capabilities struct {
	// StreamsOut pushes every accepted local write through the notify
	// hook so the binding can publish the new value.
	StreamsOut bool

	// AcceptsOverride lets an external writer set the value and engage
	// the override latch that pins it against local writes.
	AcceptsOverride bool
}

// NotifyFunc is called with the variable name after an accepted write on a
// streaming variable. Implementations must not block: the control loop
// writes variables from inside its tick. The current value is read back
// through Payload, so bursts of writes coalesce into the latest state.
type NotifyFunc func(name string)

// Variable is the binding-facing surface shared by Float and Bool.
type Variable interface {
	// Name returns the variable's topic name segment.
	Name() string

	// StreamsOut reports whether accepted writes are pushed externally.
	StreamsOut() bool

	// AcceptsOverride reports whether remote writers may drive the value.
	AcceptsOverride() bool

	// Overridden reports whether the override latch is engaged.
	Overridden() bool

	// Payload returns the current value encoded as a JSON scalar.
	Payload() []byte

	// ApplyRemote parses an inbound payload and applies it as a remote
	// write. Returns ErrReadOnly when the variable does not accept
	// overrides and ErrBadPayload when the payload does not parse.
	ApplyRemote(payload []byte) error

	// ApplyOverride engages or releases the override latch.
	ApplyOverride(active bool) error

	// SetNotify installs the push hook. Pass nil to remove it.
	SetNotify(fn NotifyFunc)
}

// variable holds the state shared by the concrete variable kinds. The
// embedding type's value field is guarded by mu as well.
type variable struct {
	name string
	caps Capabilities

	mu         sync.RWMutex
	overridden bool
	notify     NotifyFunc
}

// Name returns the variable's topic name segment.
func (v *variable) Name() string { return v.name }

// StreamsOut reports whether accepted writes are pushed externally.
func (v *variable) StreamsOut() bool { return v.caps.StreamsOut }

// AcceptsOverride reports whether remote writers may drive the value.
func (v *variable) AcceptsOverride() bool { return v.caps.AcceptsOverride }

// Overridden reports whether the override latch is engaged.
func (v *variable) Overridden() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.overridden
}

// ApplyOverride engages or releases the override latch. Variables that do
// not accept overrides reject the request with ErrReadOnly.
func (v *variable) ApplyOverride(active bool) error {
	if !v.caps.AcceptsOverride {
		return fmt.Errorf("%w: %s", ErrReadOnly, v.name)
	}
	v.mu.Lock()
	v.overridden = active
	v.mu.Unlock()
	return nil
}

// SetNotify installs the push hook. Pass nil to remove it.
func (v *variable) SetNotify(fn NotifyFunc) {
	v.mu.Lock()
	v.notify = fn
	v.mu.Unlock()
}

// fire invokes the notify hook outside the lock for streaming variables.
// Callers pass the hook captured while the lock was held.
func (v *variable) fire(notify NotifyFunc) {
	if v.caps.StreamsOut && notify != nil {
		notify(v.name)
	}
}

// validateName rejects names that are empty or would corrupt MQTT topics.
func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, "/+#") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Float
// ─────────────────────────────────────────────────────────────────────────────

// Float is a float64-valued remote process variable. Temperatures, set
// points, duty cycles, accumulated energy and countdown timers all use it.
type Float struct {
	variable
	value float64
}

// NewFloat creates a float variable with the given capabilities.
func NewFloat(name string, caps Capabilities) *Float {
	return &Float{variable: variable{name: name, caps: caps}}
}

// Set applies a local write. While an external override is engaged the
// write is dropped without error, so callers never special-case a
// variable someone else is driving.
func (f *Float) Set(value float64) {
	f.mu.Lock()
	if f.overridden {
		f.mu.Unlock()
		return
	}
	f.value = value
	notify := f.notify
	f.mu.Unlock()

	f.fire(notify)
}

// Value returns the current value.
func (f *Float) Value() float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.value
}

// SetFromRemote applies a write from an external writer. Unlike Set it
// lands regardless of the override latch; engaging the latch and writing
// is how a remote writer takes a variable away from the control loop.
func (f *Float) SetFromRemote(value float64) error {
	if !f.caps.AcceptsOverride {
		return fmt.Errorf("%w: %s", ErrReadOnly, f.name)
	}
	f.mu.Lock()
	f.value = value
	f.mu.Unlock()
	return nil
}

// Payload returns the value encoded as a JSON number.
func (f *Float) Payload() []byte {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return strconv.AppendFloat(nil, f.value, 'f', -1, 64)
}

// ApplyRemote parses a JSON number payload and applies it as a remote
// write.
func (f *Float) ApplyRemote(payload []byte) error {
	value, err := strconv.ParseFloat(strings.TrimSpace(string(payload)), 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrBadPayload, payload)
	}
	return f.SetFromRemote(value)
}

// ─────────────────────────────────────────────────────────────────────────────
// Bool
// ─────────────────────────────────────────────────────────────────────────────

// Bool is a boolean remote process variable. The permission handshake
// flags and the element status indicator use it.
type Bool struct {
	variable
	value bool
}

// NewBool creates a boolean variable with the given capabilities.
func NewBool(name string, caps Capabilities) *Bool {
	return &Bool{variable: variable{name: name, caps: caps}}
}

// Set applies a local write. While an external override is engaged the
// write is dropped without error.
func (b *Bool) Set(value bool) {
	b.mu.Lock()
	if b.overridden {
		b.mu.Unlock()
		return
	}
	b.value = value
	notify := b.notify
	b.mu.Unlock()

	b.fire(notify)
}

// Value returns the current value.
func (b *Bool) Value() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

// SetFromRemote applies a write from an external writer, bypassing the
// override latch.
func (b *Bool) SetFromRemote(value bool) error {
	if !b.caps.AcceptsOverride {
		return fmt.Errorf("%w: %s", ErrReadOnly, b.name)
	}
	b.mu.Lock()
	b.value = value
	b.mu.Unlock()
	return nil
}

// Payload returns the value encoded as a JSON boolean.
func (b *Bool) Payload() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strconv.AppendBool(nil, b.value)
}

// ApplyRemote parses a boolean payload ("true"/"false"/"1"/"0") and
// applies it as a remote write.
func (b *Bool) ApplyRemote(payload []byte) error {
	value, err := strconv.ParseBool(strings.TrimSpace(string(payload)))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrBadPayload, payload)
	}
	return b.SetFromRemote(value)
}
