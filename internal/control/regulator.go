package control

import (
	"math"
	"time"
)

// Config holds the tuning parameters for a Regulator.
// MinOutput must not exceed MaxOutput; gains must be finite.
type Config struct {
	GainProportional float64 // Kp, output units per unit of error
	GainIntegral     float64 // Ki, output units per unit of error per second
	MinOutput        float64 // Lower output clamp
	MaxOutput        float64 // Upper output clamp
}

// Regulator is a PI controller with output saturation and anti-windup.
//
// The integral term accumulates in real time: each Calculate call scales
// the error by the seconds elapsed since the previous call, so the tuning
// is independent of the tick period driving it.
//
// A disabled regulator outputs zero and holds no accumulated state, so
// re-enabling it always starts a clean control cycle.
//
// Regulator is not safe for concurrent use.
type Regulator struct {
	gainProportional float64
	gainIntegral     float64
	minOutput        float64
	maxOutput        float64

	enabled      bool
	proportional float64 // Last proportional term, pre-clamp
	integral     float64 // Accumulator, rewritten on saturation
	output       float64 // Last clamped output

	lastEvaluation time.Time
	now            func() time.Time // Injectable clock for tests
}

// NewRegulator creates a regulator from the given tuning.
// The regulator starts disabled; call Enable before use.
//
// Returns:
//   - ErrInvalidLimits if cfg.MinOutput > cfg.MaxOutput
//   - ErrInvalidGain if either gain is NaN or infinite
func NewRegulator(cfg Config) (*Regulator, error) {
	if cfg.MinOutput > cfg.MaxOutput {
		return nil, ErrInvalidLimits
	}
	for _, g := range []float64{cfg.GainProportional, cfg.GainIntegral} {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			return nil, ErrInvalidGain
		}
	}

	return &Regulator{
		gainProportional: cfg.GainProportional,
		gainIntegral:     cfg.GainIntegral,
		minOutput:        cfg.MinOutput,
		maxOutput:        cfg.MaxOutput,
		lastEvaluation:   time.Now(),
		now:              time.Now,
	}, nil
}

// Enable arms the regulator. The next Calculate call runs the full PI
// evaluation instead of returning zero.
func (r *Regulator) Enable() {
	r.enabled = true
}

// Disable disarms the regulator and discards all accumulated state.
// Subsequent Calculate calls return zero until Enable is called again,
// and the first evaluation after re-enabling starts from a zero integral.
func (r *Regulator) Disable() {
	r.enabled = false
	r.reset()
}

// Enabled reports whether the regulator is armed.
func (r *Regulator) Enabled() bool {
	return r.enabled
}

// Output returns the most recent clamped output without re-evaluating.
func (r *Regulator) Output() float64 {
	return r.output
}

// Calculate runs one PI evaluation and returns the clamped output.
//
// The error is reference minus feedback. The proportional term is the
// error scaled by Kp. The integral accumulator grows by the error scaled
// by Ki and the seconds elapsed since the previous call. When the raw sum
// saturates, the output is clamped and the accumulator is back-calculated
// so proportional + integral equals the clamped value exactly.
//
// While disabled, Calculate returns zero and clears accumulated state.
// The evaluation timestamp advances on every call regardless, so a
// regulator that sat disabled for an hour does not integrate an hour of
// error on its first enabled evaluation.
//
// Parameters:
//   - feedback: measured process value (e.g. vessel temperature in °F)
//   - reference: target value in the same units
//
// Returns the control output, always within [MinOutput, MaxOutput] or
// exactly zero while disabled.
func (r *Regulator) Calculate(feedback, reference float64) float64 {
	nowTime := r.now()
	elapsed := nowTime.Sub(r.lastEvaluation).Seconds()
	r.lastEvaluation = nowTime

	if !r.enabled {
		r.reset()
		return 0
	}

	err := reference - feedback
	r.proportional = err * r.gainProportional
	r.integral += err * r.gainIntegral * elapsed

	r.output = r.proportional + r.integral

	// Clamp and back-calculate the accumulator so it carries no error the
	// actuator cannot act on.
	switch {
	case r.output > r.maxOutput:
		r.output = r.maxOutput
		r.integral = r.maxOutput - r.proportional
	case r.output < r.minOutput:
		r.output = r.minOutput
		r.integral = r.minOutput - r.proportional
	}

	return r.output
}

// SetGains replaces the proportional and integral gains in place.
// The accumulated integral is kept, so retuning mid-run does not bump
// the output.
//
// Returns ErrInvalidGain if either gain is NaN or infinite.
func (r *Regulator) SetGains(proportional, integral float64) error {
	for _, g := range []float64{proportional, integral} {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			return ErrInvalidGain
		}
	}
	r.gainProportional = proportional
	r.gainIntegral = integral
	return nil
}

// reset clears the controller terms. The evaluation timestamp is left
// alone; Calculate maintains it unconditionally.
func (r *Regulator) reset() {
	r.proportional = 0
	r.integral = 0
	r.output = 0
}
