package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteVesselMetric writes one vessel's control state to InfluxDB.
//
// This is the primary method for recording brew telemetry. The write is
// non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - vessel: Vessel identifier ("boil_kettle" or "mash_tun")
//   - temperature: Measured liquid temperature (°F)
//   - setpoint: Active setpoint (°F)
//   - output: Regulator output (duty cycle for the kettle, source °F for the tun)
//   - enabled: Whether the vessel's regulator is enabled
//
// Example:
//
//	client.WriteVesselMetric("boil_kettle", 168.4, 170, 0.62, true)
func (c *Client) WriteVesselMetric(vessel string, temperature, setpoint, output float64, enabled bool) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"vessel",
		map[string]string{
			"vessel": vessel,
		},
		map[string]interface{}{
			"temperature": temperature,
			"setpoint":    setpoint,
			"output":      output,
			"enabled":     enabled,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteBrewState writes the recipe sequencer's position.
//
// Parameters:
//   - session: Brew session ID (UUID)
//   - state: Current state name (e.g., "Mash"), or "none" between sessions
//   - position: Numeric state position, -1 when no state is active
//   - timeInState: Seconds since the current state was entered
func (c *Client) WriteBrewState(session, state string, position int, timeInState float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"brew_state",
		map[string]string{
			"session": session,
			"state":   state,
		},
		map[string]interface{}{
			"position":      position,
			"time_in_state": timeInState,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteEnergyMetric writes element energy accounting.
//
// Parameters:
//   - session: Brew session ID (UUID)
//   - energyWh: Cumulative element energy for the session in watt hours
//   - duty: Element duty cycle over the last control period [0.0, 1.0]
func (c *Client) WriteEnergyMetric(session string, energyWh, duty float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"energy",
		map[string]string{
			"session": session,
		},
		map[string]interface{}{
			"energy_wh": energyWh,
			"duty":      duty,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for custom measurements that don't fit the helper methods.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
//
// Example:
//
//	client.WritePoint("system_stats",
//	    map[string]string{"host": "brauhaus-01"},
//	    map[string]interface{}{"cpu_percent": 45.2, "memory_mb": 512})
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

// WritePointWithTime writes a custom point with a specific timestamp.
//
// Use this when the timestamp is not "now" (e.g., delayed data).
//
// Parameters:
//   - measurement: The measurement name
//   - tags: Key-value pairs for indexing
//   - fields: Key-value pairs for the data
//   - timestamp: The exact time for this data point
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
