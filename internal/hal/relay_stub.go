//go:build !linux

package hal

// Relay is not available off-Linux; the simulator plant stands in during
// development on other platforms.
type Relay struct{}

// NewRelay returns ErrNotSupported on non-Linux platforms.
func NewRelay(chipName string, pin int) (*Relay, error) {
	return nil, ErrNotSupported
}

// SetOn is not implemented on non-Linux platforms.
func (r *Relay) SetOn() error { return ErrNotSupported }

// SetOff is not implemented on non-Linux platforms.
func (r *Relay) SetOff() error { return ErrNotSupported }

// Close is a no-op on non-Linux platforms.
func (r *Relay) Close() error { return nil }
