package brewhouse

import "time"

// Event names broadcast by the brewhouse. The WebSocket hub and the MQTT
// event topics both carry them.
const (
	// EventSnapshot carries a full Snapshot, once per tick.
	EventSnapshot = "brewhouse.snapshot"

	// EventStateChanged carries a StateChange on every machine transition.
	EventStateChanged = "brewhouse.state_changed"

	// EventPermission carries a PermissionChange whenever the request or
	// grant flag flips.
	EventPermission = "brewhouse.permission"

	// EventSession carries a SessionChange on session start and stop.
	EventSession = "brewhouse.session"
)

// Broadcaster receives brewhouse events for external distribution.
// Implementations must not block: Broadcast is called from inside the
// tick.
type Broadcaster interface {
	Broadcast(event string, payload any)
}

// noopBroadcaster discards all events.
type noopBroadcaster struct{}

func (noopBroadcaster) Broadcast(string, any) {}

// KettleStatus is the boil kettle's slice of a snapshot.
type KettleStatus struct {
	Temperature float64 `json:"temperature"`
	Setpoint    float64 `json:"setpoint"`
	DutyCycle   float64 `json:"duty_cycle"`
	ElementOn   bool    `json:"element_on"`
}

// MashStatus is the mash tun's slice of a snapshot.
type MashStatus struct {
	Temperature       float64 `json:"temperature"`
	Setpoint          float64 `json:"setpoint"`
	SourceTemperature float64 `json:"source_temperature"`
	Enabled           bool    `json:"enabled"`
}

// Snapshot is a point-in-time view of the whole brewhouse, safe to hand
// to the API and the telemetry recorder.
type Snapshot struct {
	Time               time.Time    `json:"time"`
	Session            *SessionInfo `json:"session,omitempty"`
	State              string       `json:"state,omitempty"`
	Position           int          `json:"position"`
	TimeInStateSeconds float64      `json:"time_in_state_seconds"`
	TimerSeconds       *float64     `json:"timer_seconds,omitempty"`
	Kettle             KettleStatus `json:"boil_kettle"`
	MashTun            MashStatus   `json:"mash_tun"`
	PumpOn             bool         `json:"pump_on"`
	EnergyWh           float64      `json:"energy_wh"`
	RequestPermission  bool         `json:"request_permission"`
	GrantPermission    bool         `json:"grant_permission"`
}

// StateChange is the EventStateChanged payload.
type StateChange struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Position int    `json:"position"`
}

// PermissionChange is the EventPermission payload.
type PermissionChange struct {
	RequestPermission bool `json:"request_permission"`
	GrantPermission   bool `json:"grant_permission"`
}

// SessionChange is the EventSession payload.
type SessionChange struct {
	Active  bool         `json:"active"`
	Session *SessionInfo `json:"session,omitempty"`
}
