// Package telemetry records brewhouse state into InfluxDB on a fixed
// interval.
//
// The recorder is deliberately one-way glass: it samples snapshots and
// writes measurement points, never feeding anything back into control.
// Vessel metrics stream continuously so probes can be watched between
// brews; sequencer and energy metrics are tagged with the session ID
// and only flow while a brew runs.
package telemetry
