package acoustics

import "math"

// VoltageToDecibel converts an amplitude ratio to decibels (20·log10).
func VoltageToDecibel(volt float64) float64 {
	return 20 * math.Log10(volt)
}

// DecibelToVoltage is the inverse of VoltageToDecibel.
func DecibelToVoltage(db float64) float64 {
	return math.Pow(10, db/20)
}

// PowerToDecibel converts a power ratio to decibels (10·log10).
func PowerToDecibel(power float64) float64 {
	return 10 * math.Log10(power)
}

// DecibelToPower is the inverse of PowerToDecibel.
func DecibelToPower(db float64) float64 {
	return math.Pow(10, db/10)
}
