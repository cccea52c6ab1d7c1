package acoustics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/interp"
)

// CarrierFrequency is the transducer carrier frequency in Hz used for
// wavelength lookups.
const CarrierFrequency = 2.1e6

// ErrTemperatureNotTabulated is returned by WavelengthAt for temperatures
// missing from the sound speed table.
var ErrTemperatureNotTabulated = errors.New("acoustics: temperature not tabulated")

// soundSpeed maps water temperature (°C) to sound velocity (m/s).
var soundSpeed = map[float64]float64{
	0:  1403,
	5:  1427,
	10: 1447,
	20: 1481,
	30: 1507,
	40: 1526,
	50: 1541,
}

var soundSpeedCurve = fitSoundSpeed()

func fitSoundSpeed() *interp.PiecewiseLinear {
	temps := make([]float64, 0, len(soundSpeed))
	for t := range soundSpeed {
		temps = append(temps, t)
	}
	sort.Float64s(temps)
	speeds := make([]float64, len(temps))
	for i, t := range temps {
		speeds[i] = soundSpeed[t]
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(temps, speeds); err != nil {
		panic(fmt.Sprintf("acoustics: sound speed table: %v", err))
	}
	return &pl
}

// TabulatedTemperatures returns the temperatures WavelengthAt accepts, ascending.
func TabulatedTemperatures() []float64 {
	temps := make([]float64, 0, len(soundSpeed))
	for t := range soundSpeed {
		temps = append(temps, t)
	}
	sort.Float64s(temps)
	return temps
}

// WavelengthAt returns the carrier wavelength in metres at one of the
// tabulated water temperatures.
func WavelengthAt(temperature float64) (float64, error) {
	v, ok := soundSpeed[temperature]
	if !ok {
		return math.NaN(), fmt.Errorf("%w: %g °C", ErrTemperatureNotTabulated, temperature)
	}
	return v / CarrierFrequency, nil
}

// SoundSpeedAt interpolates the sound speed table linearly. Temperatures
// outside the table clamp to its end points.
func SoundSpeedAt(temperature float64) float64 {
	temps := TabulatedTemperatures()
	lo, hi := temps[0], temps[len(temps)-1]
	if temperature <= lo {
		return soundSpeed[lo]
	}
	if temperature >= hi {
		return soundSpeed[hi]
	}
	return soundSpeedCurve.Predict(temperature)
}

// SonarEquationSNR evaluates the active sonar equation. All terms in dB.
func SonarEquationSNR(sourceLevel, noiseLevel, directivityIndex, transmissionLoss, targetStrength float64) float64 {
	return sourceLevel + targetStrength - 2*transmissionLoss - (noiseLevel - directivityIndex)
}

// PeriodicTime is the duration of one carrier cycle.
func PeriodicTime(frequency float64) float64 {
	return 1 / frequency
}

// PulseLength is the physical length in water of a pulse of the given
// number of cycles.
func PulseLength(cycles int, frequency, velocity float64) float64 {
	return float64(cycles) * PeriodicTime(frequency) * velocity
}

// AcousticPowerOutput converts electrical input power (W) to radiated
// acoustic power using the transducer efficiency eta.
func AcousticPowerOutput(eta, electricPower float64) float64 {
	return eta * electricPower
}

// SourceLevel in dB re 1 µPa at 1 m (Urick): 170.8 + 10·log10(Wa) + DI.
func SourceLevel(eta, electricPower, directivityIndex float64) float64 {
	return 170.8 + PowerToDecibel(AcousticPowerOutput(eta, electricPower)) + directivityIndex
}
