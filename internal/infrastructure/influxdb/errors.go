package influxdb

import "errors"

// Sentinel errors for telemetry storage; match with errors.Is.
var (
	ErrNotConnected     = errors.New("influxdb: not connected")
	ErrConnectionFailed = errors.New("influxdb: connection failed")

	// ErrDisabled means the influxdb section of config.yaml is switched
	// off. The daemon treats it as "run without telemetry storage".
	ErrDisabled = errors.New("influxdb: disabled in configuration")
)
