package vessel

import "github.com/ferment8/brauhaus-core/internal/hal"

// Pump is the recirculation pump. It carries no regulator; states simply
// switch it with the same emergency-stop interlock as the element.
//
// Not safe for concurrent use; owned by the control loop goroutine.
type Pump struct {
	enabled       bool
	emergencyStop bool
	actuator      hal.Actuator
	logger        Logger
}

// NewPump creates a pump driving the given actuator.
func NewPump(actuator hal.Actuator) (*Pump, error) {
	if actuator == nil {
		return nil, ErrNilActuator
	}
	return &Pump{actuator: actuator, logger: noopLogger{}}, nil
}

// SetLogger sets the logger for the pump.
func (p *Pump) SetLogger(logger Logger) {
	p.logger = logger
}

// Enabled reports whether the pump is running.
func (p *Pump) Enabled() bool {
	return p.enabled
}

// EmergencyStop reports whether the emergency stop is engaged.
func (p *Pump) EmergencyStop() bool {
	return p.emergencyStop
}

// SetEmergencyStop engages or releases the emergency stop. Applied lazily:
// the next On call routes to Off.
func (p *Pump) SetEmergencyStop(engaged bool) {
	p.emergencyStop = engaged
}

// On starts the pump, unless the emergency stop is engaged, in which case
// it routes to Off.
func (p *Pump) On() error {
	if p.emergencyStop {
		return p.Off()
	}
	p.enabled = true
	if err := p.actuator.SetOn(); err != nil {
		p.logger.Error("pump on failed", "error", err)
		return err
	}
	return nil
}

// Off stops the pump unconditionally.
func (p *Pump) Off() error {
	p.enabled = false
	if err := p.actuator.SetOff(); err != nil {
		p.logger.Error("pump off failed", "error", err)
		return err
	}
	return nil
}
