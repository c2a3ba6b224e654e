package thermal

import "time"

// JoulesPerGallonDegF is the energy in joules required to raise one US
// gallon of water by one degree Fahrenheit (4185 J/(kg·°C) specific heat,
// 3.7854 kg per gallon, 1.8 °F per °C).
const JoulesPerGallonDegF = 8801.0

// Ramp returns the instantaneous temperature rate-of-change in °F per
// second for the given heating power applied to a volume of water.
// Ambient loss is ignored; this is the ideal adiabatic rate.
//
// A non-positive volume yields zero rather than a division blow-up.
func Ramp(powerWatts, volumeGallons float64) float64 {
	if volumeGallons <= 0 {
		return 0
	}
	return powerWatts / (volumeGallons * JoulesPerGallonDegF)
}

// ExchangePower returns the heat flow in watts across an exchanger whose
// source side sits at sourceTemp and liquid side at liquidTemp, with the
// given conductivity in watts per °F of differential. Negative values
// mean the exchanger is cooling the liquid.
func ExchangePower(sourceTemp, liquidTemp, conductivityWattsPerDegF float64) float64 {
	return (sourceTemp - liquidTemp) * conductivityWattsPerDegF
}

// ExchangeRamp returns the temperature rate-of-change in °F per second of
// a liquid volume coupled to a source through an exchanger. It composes
// ExchangePower and Ramp.
func ExchangeRamp(sourceTemp, liquidTemp, conductivityWattsPerDegF, volumeGallons float64) float64 {
	return Ramp(ExchangePower(sourceTemp, liquidTemp, conductivityWattsPerDegF), volumeGallons)
}

// WattHours converts a power level sustained for a duration into watt
// hours. Used by the session energy accumulator.
func WattHours(powerWatts float64, elapsed time.Duration) float64 {
	return powerWatts * elapsed.Hours()
}
