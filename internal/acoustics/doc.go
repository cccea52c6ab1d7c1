// Package acoustics is a stateless toolkit of underwater acoustics equations:
// absorption and transmission loss, decibel conversions, the active sonar
// equation, and pulse geometry.
//
// Frequencies passed to the absorption and transmission loss functions are
// in kHz; depths and distances are in metres unless stated otherwise.
package acoustics
