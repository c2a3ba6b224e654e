package brewhouse

import (
	"time"

	"github.com/ferment8/brauhaus-core/internal/sequence"
)

// State tags, in recipe order. The machine walks them top to bottom; the
// tag doubles as the machine position.
const (
	StatePrestart = iota
	StatePremash
	StateStrike
	StatePostStrike
	StateMash
	StateMashoutRamp
	StateMashoutRecirculation
	StateSpargePrep
	StateSparge
	StatePreBoil
	StateMashToBoil
	StateBoilPreheat
	StateBoil
	StateCoolingPrep
	StateCool
	StatePumpout
	StateDone
)

const (
	// mashoutOvershoot is added to the mashout set point while ramping so
	// the kettle drives the recirculating wort up through the target.
	mashoutOvershoot = 5.0

	// boilApproachBand is how far below the boil set point the preheat
	// state hands over to the boil proper.
	boilApproachBand = 10.0
)

// states builds the recipe sequence. Each Run is invoked once per tick
// while its state is current and asserts the full output set: pump,
// element enablement, set points, and either the permission request or an
// automatic advance. Never both for the same condition.
func (b *Brewhouse) states() []sequence.State {
	return []sequence.State{
		{
			Tag:         StatePrestart,
			Name:        "prestart",
			Description: "Everything off, waiting for the operator to begin",
			Run:         b.runPrestart,
		},
		{
			Tag:         StatePremash,
			Name:        "premash",
			Description: "Heating strike water in the boil kettle",
			Run:         b.runPremash,
		},
		{
			Tag:         StateStrike,
			Name:        "strike",
			Description: "Transferring strike water to the mash tun",
			Run:         b.runStrike,
		},
		{
			Tag:         StatePostStrike,
			Name:        "post_strike",
			Description: "Reheating to the first mash step after dough-in",
			Run:         b.runPostStrike,
		},
		{
			Tag:         StateMash,
			Name:        "mash",
			Description: "Recirculating through the mash temperature profile",
			Run:         b.runMash,
		},
		{
			Tag:         StateMashoutRamp,
			Name:        "mashout_ramp",
			Description: "Raising the mash to mashout temperature",
			Run:         b.runMashoutRamp,
		},
		{
			Tag:         StateMashoutRecirculation,
			Name:        "mashout_recirculation",
			Description: "Holding mashout temperature while recirculating",
			Run:         b.runMashoutRecirculation,
		},
		{
			Tag:         StateSpargePrep,
			Name:        "sparge_prep",
			Description: "Idle, waiting for sparge plumbing",
			Run:         b.runSpargePrep,
		},
		{
			Tag:         StateSparge,
			Name:        "sparge",
			Description: "Rinsing the grain bed",
			Run:         b.runSparge,
		},
		{
			Tag:         StatePreBoil,
			Name:        "pre_boil",
			Description: "Idle, waiting for boil plumbing",
			Run:         b.runPreBoil,
		},
		{
			Tag:         StateMashToBoil,
			Name:        "mash_to_boil",
			Description: "Pumping wort to the boil kettle",
			Run:         b.runMashToBoil,
		},
		{
			Tag:         StateBoilPreheat,
			Name:        "boil_preheat",
			Description: "Driving the kettle up to boil temperature",
			Run:         b.runBoilPreheat,
		},
		{
			Tag:         StateBoil,
			Name:        "boil",
			Description: "Boiling for the recipe's boil time",
			Run:         b.runBoil,
		},
		{
			Tag:         StateCoolingPrep,
			Name:        "cooling_prep",
			Description: "Idle, waiting for chiller plumbing",
			Run:         b.runCoolingPrep,
		},
		{
			Tag:         StateCool,
			Name:        "cool",
			Description: "Circulating through the chiller",
			Run:         b.runCool,
		},
		{
			Tag:         StatePumpout,
			Name:        "pumpout",
			Description: "Transferring cooled wort to the fermenter",
			Run:         b.runPumpout,
		},
		{
			Tag:         StateDone,
			Name:        "done",
			Description: "Brew complete",
			Run:         b.runDone,
		},
	}
}

func (b *Brewhouse) runPrestart() {
	_ = b.pump.Off()
	b.kettle.Disable()
	b.mash.Disable()
	b.vars.Request.Set(true)
}

func (b *Brewhouse) runPremash() {
	r := b.session.Recipe
	_ = b.pump.Off()
	b.kettle.Enable()
	b.kettle.SetSetpoint(r.StrikeTemperature)
	b.mash.Disable()
	b.vars.Request.Set(b.kettle.Temperature() > r.StrikeTemperature)
}

func (b *Brewhouse) runStrike() {
	_ = b.pump.On()
	b.kettle.Disable()
	b.kettle.SetSetpoint(b.session.Recipe.FirstStepTemperature())
	b.mash.Disable()
	b.vars.Request.Set(true)
}

func (b *Brewhouse) runPostStrike() {
	_ = b.pump.Off()
	b.kettle.Enable()
	b.kettle.SetSetpoint(b.session.Recipe.FirstStepTemperature())
	b.mash.Disable()
	b.vars.Request.Set(b.kettle.Temperature() > b.kettle.Setpoint())
}

// runMash follows the mash profile. The kettle holds its own temperature
// as a placeholder set point; the exchanger's source temperature replaces
// it later in the same tick while the exchanger is enabled.
func (b *Brewhouse) runMash() {
	_ = b.pump.On()
	b.kettle.Enable()
	b.kettle.SetSetpoint(b.kettle.Temperature())
	b.mash.Enable()

	remaining := b.entered.Add(b.session.Profile.Length()).Sub(b.working)
	b.setTimer(remaining)
	if remaining <= 0 {
		b.machine.Next()
		return
	}

	target, err := b.session.Profile.At(b.working.Sub(b.entered))
	if err != nil {
		b.logger.Error("mash profile lookup failed",
			"elapsed", b.working.Sub(b.entered),
			"error", err)
		return
	}
	b.mash.SetSetpoint(target)
}

func (b *Brewhouse) runMashoutRamp() {
	r := b.session.Recipe
	_ = b.pump.On()
	b.kettle.Enable()
	b.kettle.SetSetpoint(r.MashoutTemperature + mashoutOvershoot)
	b.mash.Disable()
	b.mash.SetSetpoint(r.MashoutTemperature)
	if b.kettle.Temperature() > r.MashoutTemperature {
		b.machine.Next()
	}
}

func (b *Brewhouse) runMashoutRecirculation() {
	r := b.session.Recipe
	_ = b.pump.On()
	b.kettle.Enable()
	b.kettle.SetSetpoint(r.MashoutTemperature)
	b.mash.Disable()
	b.mash.SetSetpoint(r.MashoutTemperature)

	remaining := b.entered.Add(r.MashoutTime()).Sub(b.working)
	b.setTimer(remaining)
	b.vars.Request.Set(remaining <= 0)
}

func (b *Brewhouse) runSpargePrep() {
	_ = b.pump.Off()
	b.kettle.Disable()
	b.mash.Disable()
	b.vars.Request.Set(true)
}

func (b *Brewhouse) runSparge() {
	_ = b.pump.On()
	b.kettle.Disable()
	b.mash.Disable()
	b.vars.Request.Set(true)
}

func (b *Brewhouse) runPreBoil() {
	_ = b.pump.Off()
	b.kettle.Disable()
	b.mash.Disable()
	b.vars.Request.Set(true)
}

func (b *Brewhouse) runMashToBoil() {
	_ = b.pump.On()
	b.kettle.Disable()
	b.mash.Disable()
	b.vars.Request.Set(true)
}

func (b *Brewhouse) runBoilPreheat() {
	_ = b.pump.Off()
	b.kettle.Enable()
	b.kettle.SetSetpoint(b.session.Recipe.BoilTemperature)
	b.mash.Disable()
	if b.kettle.Temperature() > b.kettle.Setpoint()-boilApproachBand {
		b.machine.Next()
	}
}

func (b *Brewhouse) runBoil() {
	r := b.session.Recipe
	_ = b.pump.Off()
	b.kettle.Enable()
	b.kettle.SetSetpoint(r.BoilTemperature)
	b.mash.Disable()

	remaining := b.entered.Add(r.BoilTime()).Sub(b.working)
	b.setTimer(remaining)
	if remaining <= 0 {
		b.machine.Next()
	}
}

func (b *Brewhouse) runCoolingPrep() {
	_ = b.pump.Off()
	b.kettle.Disable()
	b.mash.Disable()
	b.vars.Request.Set(true)
}

func (b *Brewhouse) runCool() {
	_ = b.pump.On()
	b.kettle.Disable()
	b.mash.Disable()
	b.vars.Request.Set(b.kettle.Temperature() < b.session.Recipe.CoolTemperature)
}

func (b *Brewhouse) runPumpout() {
	_ = b.pump.On()
	b.kettle.Disable()
	b.mash.Disable()
	b.vars.Request.Set(true)
}

func (b *Brewhouse) runDone() {
	_ = b.pump.Off()
	b.kettle.Disable()
	b.mash.Disable()
	b.vars.Request.Set(false)
}

// setTimer records the countdown shown to operators. Cleared on every
// transition; timer states refresh it each tick.
func (b *Brewhouse) setTimer(remaining time.Duration) {
	b.timer = &remaining
}
