// Package remote implements externally visible process variables and the
// MQTT binding that streams them off the controller.
//
// The control loop reads and writes variables as plain values. Two
// capabilities, chosen per variable, decide what the outside world can do
// with them:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│                        Control Loop                          │
//	│   Set / Value                                                │
//	└──────┬───────────────────────────────────────────────▲───────┘
//	       │ notify (never blocks)                         │
//	┌──────▼───────────────────────────────────────────────┴───────┐
//	│                      remote.Binding                          │
//	│   publish queue ──▶ brauhaus/var/{name}  (retained)          │
//	│   subscribe     ◀── brauhaus/var/{name}/set                  │
//	│   subscribe     ◀── brauhaus/var/{name}/override             │
//	└──────────────────────────────────────────────────────────────┘
//
// # Key Types
//
//   - Float, Bool: named process variables with capability flags
//   - Capabilities: selects streaming and override behaviour per variable
//   - Binding: wires a set of variables to an MQTT client
//
// # Override Semantics
//
// A remote writer may engage a variable's override latch. While the latch
// is engaged, local writes from the control loop are dropped silently so
// the loop never needs to special-case a variable someone else is driving.
// Remote writes land regardless of the latch. Releasing the latch hands
// the variable back to the loop, which refreshes it on its next tick.
//
// # Thread Safety
//
// All variable methods are safe for concurrent use. The binding publishes
// from its own goroutine through a bounded queue; a slow or disconnected
// broker drops updates rather than stalling the writer.
package remote
