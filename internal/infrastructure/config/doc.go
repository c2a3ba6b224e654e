// Package config loads and validates the daemon's configuration.
//
// Precedence is defaults, then config.yaml, then BRAUHAUS_* environment
// variables. Secrets (JWT secret, operator PIN hash, broker and
// InfluxDB credentials) belong in the environment, not the file.
//
// Validate is strict on the security section: the API arms heating
// elements, so the daemon refuses to start without a real JWT secret
// and PIN hash.
package config
