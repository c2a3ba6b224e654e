// Package influxdb stores brew telemetry in InfluxDB v2.
//
// It wraps influxdb-client-go with the daemon's conventions: Connect
// pings before returning, writes go through the non-blocking batched
// write API, and async write failures surface through SetOnError.
//
// Three measurements are written per session: vessel (temperature,
// setpoint, regulator output per vessel), brew_state (the sequencer's
// position) and energy (cumulative element watt hours). WritePoint and
// WritePointWithTime cover anything custom.
//
// The whole package is optional: when the influxdb config section is
// disabled, Connect returns ErrDisabled and the daemon brews without
// stored telemetry.
package influxdb
