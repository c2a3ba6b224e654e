// Package logging configures slog for the daemon.
//
// Records carry service and version fields on top of whatever the call
// site adds; format (json/text), level and destination come from the
// logging section of config.yaml. Child loggers are made with With:
//
//	logger.With("component", "brewhouse").Info("tick started")
//
// Never log secrets: tokens, PINs and broker passwords stay out of
// records, truncated prefixes at most.
package logging
