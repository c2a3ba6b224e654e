// Package sim provides a two-vessel thermal plant simulation for
// running the brewery without hardware.
//
// The plant stands in for the physical rig behind the same hal
// interfaces the gpio backend implements, so the control loop cannot
// tell them apart:
//
//	                ┌─────────────────────────────┐
//	 element relay →│  boil kettle   ──── coil ───│← pump relay
//	                │  (element W)    (while pump)│
//	 kettle probe ←─│                 mash tun    │─→ mash probe
//	                └──────────┬──────────────────┘
//	                           ↓ ambient loss
//
// A fixed-step integrator applies three heat flows: element power into
// the kettle while its relay is closed, exchanger power between kettle
// and mash tun proportional to their differential while the pump runs,
// and ambient loss proportional to each vessel's excess over room
// temperature. Rates come from the thermal package, so the simulation
// and the controller's feed-forward estimates share one model.
//
// # Thread Safety
//
// All methods are safe for concurrent use. The integration loop runs on
// its own goroutine between Start and Stop; probe reads and relay
// writes arrive from the control loop.
package sim
