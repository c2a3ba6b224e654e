package brewhouse

import "github.com/ferment8/brauhaus-core/internal/remote"

// Variable names in the brauhaus/var MQTT namespace.
const (
	VarKettleTemperature = "boil_kettle_temp"
	VarMashTemperature   = "mash_tun_temp"
	VarKettleSetpoint    = "boil_kettle_setpoint"
	VarMashSetpoint      = "mash_tun_setpoint"
	VarDutyCycle         = "duty_cycle"
	VarElementStatus     = "element_status"
	VarPumpOn            = "pump_on"
	VarEnergy            = "energy"
	VarTimer             = "timer"
	VarRequestPermission = "request_permission"
	VarGrantPermission   = "grant_permission"
)

// Variables is the brewhouse's remote process variable set. The control
// loop refreshes the outputs once per tick; the set points accept external
// overrides and the grant flag accepts remote writes, so an operator can
// drive them over MQTT as well as through the API.
type Variables struct {
	KettleTemperature *remote.Float
	MashTemperature   *remote.Float
	KettleSetpoint    *remote.Float
	MashSetpoint      *remote.Float
	DutyCycle         *remote.Float
	ElementStatus     *remote.Bool
	PumpOn            *remote.Bool
	Energy            *remote.Float
	Timer             *remote.Float
	Request           *remote.Bool
	Grant             *remote.Bool
}

// NewVariables creates the variable set with its capability flags.
func NewVariables() *Variables {
	stream := remote.Capabilities{StreamsOut: true}
	writable := remote.Capabilities{StreamsOut: true, AcceptsOverride: true}

	return &Variables{
		KettleTemperature: remote.NewFloat(VarKettleTemperature, stream),
		MashTemperature:   remote.NewFloat(VarMashTemperature, stream),
		KettleSetpoint:    remote.NewFloat(VarKettleSetpoint, writable),
		MashSetpoint:      remote.NewFloat(VarMashSetpoint, writable),
		DutyCycle:         remote.NewFloat(VarDutyCycle, stream),
		ElementStatus:     remote.NewBool(VarElementStatus, stream),
		PumpOn:            remote.NewBool(VarPumpOn, stream),
		Energy:            remote.NewFloat(VarEnergy, stream),
		Timer:             remote.NewFloat(VarTimer, stream),
		Request:           remote.NewBool(VarRequestPermission, stream),
		Grant:             remote.NewBool(VarGrantPermission, writable),
	}
}

// All returns every variable for registration with a remote.Binding.
func (v *Variables) All() []remote.Variable {
	return []remote.Variable{
		v.KettleTemperature,
		v.MashTemperature,
		v.KettleSetpoint,
		v.MashSetpoint,
		v.DutyCycle,
		v.ElementStatus,
		v.PumpOn,
		v.Energy,
		v.Timer,
		v.Request,
		v.Grant,
	}
}
