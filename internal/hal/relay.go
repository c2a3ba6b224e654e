//go:build linux

package hal

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Relay drives a solid-state relay through a Linux GPIO character device
// line. Logical on drives the line high; wiring is assumed active-high,
// which matches the usual SSR control input.
type Relay struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
	pin  int
}

// NewRelay opens the named GPIO chip and requests pin as an output,
// initially driven low (relay off).
func NewRelay(chipName string, pin int) (*Relay, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("hal: open gpio chip %s: %w", chipName, err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("hal: request output pin %d: %w", pin, err)
	}

	return &Relay{chip: chip, line: line, pin: pin}, nil
}

// SetOn energises the relay.
func (r *Relay) SetOn() error {
	if err := r.line.SetValue(1); err != nil {
		return fmt.Errorf("hal: set pin %d high: %w", r.pin, err)
	}
	return nil
}

// SetOff de-energises the relay.
func (r *Relay) SetOff() error {
	if err := r.line.SetValue(0); err != nil {
		return fmt.Errorf("hal: set pin %d low: %w", r.pin, err)
	}
	return nil
}

// Close drives the line low and releases GPIO resources. The off-first
// order guarantees the element cannot be left energised across a restart.
func (r *Relay) Close() error {
	var errs []error

	if r.line != nil {
		if err := r.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("drive pin %d low: %w", r.pin, err))
		}
		if err := r.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pin %d: %w", r.pin, err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("hal: close errors: %v", errs)
	}
	return nil
}
