// Package brewhouse orchestrates a brew session: a fixed-period control
// loop drives the 17-state recipe sequence over two vessels and a pump.
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                        Brewhouse tick                         │
//	│                                                               │
//	│  sample ─▶ consume grant ─▶ evaluate state ─▶ regulate mash   │
//	│     ─▶ propagate source temp ─▶ regulate kettle ─▶ energy     │
//	│     ─▶ refresh remote vars ─▶ broadcast snapshot              │
//	└──────────────┬────────────────────────────────────────────────┘
//	               │ ≤ 2 relay events, anchored to tick start
//	               ▼
//	        element on / off
//
// # Sequence
//
// Prestart, Premash, Strike, PostStrike, Mash, MashoutRamp,
// MashoutRecirculation, SpargePrep, Sparge, PreBoil, MashToBoil,
// BoilPreheat, Boil, CoolingPrep, Cool, Pumpout, Done.
//
// States fall into two advance styles. Threshold or timer states call the
// machine's Next directly when their condition is met. Permission-gated
// states raise request_permission and wait; the loop consumes a matching
// grant_permission at the next tick boundary and advances. Every position
// change clears both flags.
//
// # Concurrency
//
// One goroutine executes ticks; scheduled relay events run on the same
// goroutine and write only actuators. Operator actions (session start and
// stop, grants, state jumps, set point overrides) are flags and values
// consumed at tick boundaries. Stop drives the plant to its safe state
// unconditionally before returning.
package brewhouse
