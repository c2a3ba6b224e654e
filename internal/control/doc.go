// Package control implements the PI regulator driving vessel heating.
//
// The regulator computes an output from a feedback/reference pair using
// proportional and integral gains, clamps the output to a configured range,
// and applies anti-windup back-calculation so the integral term never
// accumulates error the actuator cannot act on.
//
//	          ┌──────────────────────────────┐
//	ref ──────►                              │
//	          │  e = ref − fb                │
//	fb  ──────►  P = e·Kp                    ├────► output ∈ [min, max]
//	          │  I += e·Ki·Δt                │
//	          │  clamp + back-calculate I    │
//	          └──────────────────────────────┘
//
// # Key Types
//
//   - Regulator: PI controller with saturation and anti-windup
//   - Config: gains and output limits, validated at construction
//
// # Anti-Windup
//
// When the raw output exceeds a limit, the output is clamped and the
// integral accumulator is rewritten so proportional + integral equals the
// clamped value. The accumulator therefore resumes from the saturation
// boundary the moment the error changes sign, instead of unwinding a large
// accumulated surplus first.
//
// # Thread Safety
//
// Regulator is NOT safe for concurrent use. It is owned by the control
// loop's single tick goroutine; nothing else may call it.
//
// # Usage
//
//	reg, err := control.NewRegulator(control.Config{
//	    GainProportional: 0.05,
//	    GainIntegral:     0.002,
//	    MinOutput:        0,
//	    MaxOutput:        1,
//	})
//	if err != nil {
//	    return err
//	}
//	reg.Enable()
//	duty := reg.Calculate(measured, setpoint)
package control
