// Package sonar implements the imaging sonar sensor model: the angular ray
// lattice, the echo intensity model, and the beam/range image accumulator.
package sonar

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("sonar: invalid config")

// LayerMask selects which scene layers are visible to the sonar, one bit per layer.
type LayerMask uint32

// AllLayers makes every layer visible.
const AllLayers LayerMask = ^LayerMask(0)

// Has reports whether layer (0–31) is visible.
func (m LayerMask) Has(layer int) bool {
	if layer < 0 || layer > 31 {
		return false
	}
	return m&(1<<uint(layer)) != 0
}

// Config describes one sonar head. It is passed by value and never mutated
// during a capture.
type Config struct {
	HorizontalFOV float64 // degrees, (0, 360]
	VerticalFOV   float64 // degrees, [0, 90]
	MinRange      float64
	MaxRange      float64

	Beams     int // horizontal resolution
	RangeBins int // radial resolution

	// VerticalSampleMultiplier scales the number of vertical samples per beam
	// relative to RangeBins.
	VerticalSampleMultiplier float64

	NoiseEnabled bool
	NoiseLevel   float64 // [0, 1]

	Mask LayerMask
}

// DefaultConfig returns the stock sonar head: 60°×12° fan, 0.1–5 m,
// 512 beams by 440 bins.
func DefaultConfig() Config {
	return Config{
		HorizontalFOV:            60,
		VerticalFOV:              12,
		MinRange:                 0.1,
		MaxRange:                 5,
		Beams:                    512,
		RangeBins:                440,
		VerticalSampleMultiplier: 1,
		NoiseEnabled:             true,
		NoiseLevel:               0.2,
		Mask:                     AllLayers,
	}
}

// Validate checks the ranges every capture relies on.
func (c Config) Validate() error {
	switch {
	case c.Beams <= 0:
		return fmt.Errorf("%w: beams must be positive, got %d", ErrInvalidConfig, c.Beams)
	case c.RangeBins <= 0:
		return fmt.Errorf("%w: range bins must be positive, got %d", ErrInvalidConfig, c.RangeBins)
	case !(c.MinRange < c.MaxRange):
		return fmt.Errorf("%w: min range %g must be below max range %g", ErrInvalidConfig, c.MinRange, c.MaxRange)
	case !(c.HorizontalFOV > 0 && c.HorizontalFOV <= 360):
		return fmt.Errorf("%w: horizontal FOV %g outside (0, 360]", ErrInvalidConfig, c.HorizontalFOV)
	case !(c.VerticalFOV >= 0 && c.VerticalFOV <= 90):
		return fmt.Errorf("%w: vertical FOV %g outside [0, 90]", ErrInvalidConfig, c.VerticalFOV)
	case !(c.VerticalSampleMultiplier >= 0.1):
		return fmt.Errorf("%w: vertical sample multiplier %g below 0.1", ErrInvalidConfig, c.VerticalSampleMultiplier)
	case !(c.NoiseLevel >= 0 && c.NoiseLevel <= 1):
		return fmt.Errorf("%w: noise level %g outside [0, 1]", ErrInvalidConfig, c.NoiseLevel)
	}
	return nil
}

// Samples is the number of vertical samples cast per beam.
func (c Config) Samples() int {
	n := int(math.Floor(c.VerticalSampleMultiplier * float64(c.RangeBins)))
	if n < 1 {
		return 1
	}
	return n
}

// EffectiveRange is the length of the range window.
func (c Config) EffectiveRange() float64 {
	return c.MaxRange - c.MinRange
}
