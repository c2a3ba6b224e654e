package recipe

import "time"

// Recipe is the immutable parameter set for one brew session.
//
// Temperatures are °F. Durations are stored as minutes in the JSON
// document, matching how brewers write recipes; the duration accessors
// convert for the control loop.
type Recipe struct {
	// Identity
	ID    string `json:"id"`
	Name  string `json:"name"`
	Style string `json:"style,omitempty"` // e.g. "American Pale Ale"

	// Temperatures (°F)
	StrikeTemperature  float64 `json:"strike_temperature"`
	MashoutTemperature float64 `json:"mashout_temperature"`
	BoilTemperature    float64 `json:"boil_temperature"`
	CoolTemperature    float64 `json:"cool_temperature"`

	// Durations (minutes)
	MashoutMinutes float64 `json:"mashout_minutes"`
	BoilMinutes    float64 `json:"boil_minutes"`

	// Mash rest steps, in order
	MashSteps []MashStep `json:"mash_steps"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MashStep is one rest in the mash schedule.
type MashStep struct {
	Minutes     float64 `json:"minutes"`
	Temperature float64 `json:"temperature"` // °F
}

// Duration returns the step length as a time.Duration.
func (s MashStep) Duration() time.Duration {
	return time.Duration(s.Minutes * float64(time.Minute))
}

// MashoutTime returns the mashout recirculation hold as a time.Duration.
func (r *Recipe) MashoutTime() time.Duration {
	return time.Duration(r.MashoutMinutes * float64(time.Minute))
}

// BoilTime returns the boil length as a time.Duration.
func (r *Recipe) BoilTime() time.Duration {
	return time.Duration(r.BoilMinutes * float64(time.Minute))
}

// FirstStepTemperature returns the temperature of the first mash rest,
// the set point used while doughing in. Zero when no steps exist; a
// validated recipe always has at least one.
func (r *Recipe) FirstStepTemperature() float64 {
	if len(r.MashSteps) == 0 {
		return 0
	}
	return r.MashSteps[0].Temperature
}

// DeepCopy creates a completely independent copy of the recipe.
func (r *Recipe) DeepCopy() *Recipe {
	if r == nil {
		return nil
	}
	clone := *r
	if r.MashSteps != nil {
		clone.MashSteps = make([]MashStep, len(r.MashSteps))
		copy(clone.MashSteps, r.MashSteps)
	}
	return &clone
}
