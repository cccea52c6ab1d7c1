package sonar

import (
	"math"

	"sonar-renderer/internal/acoustics"
	"sonar-renderer/internal/mathutil"
)

// DitherAmplitude bounds the dither term added to every echo, independent
// of the noise setting.
const DitherAmplitude = 0.2

// EchoInput is everything the intensity model needs about one hit.
type EchoInput struct {
	Hit            Hit
	Ray            Ray
	SensorPosition mathutil.Vec3
}

// HitPoint returns the world-space intersection point.
func (in EchoInput) HitPoint() mathutil.Vec3 {
	return in.Ray.At(in.Hit.Distance)
}

// Incidence is the cosine between the surface normal and the direction from
// the hit point back to the sensor.
func (in EchoInput) Incidence() float64 {
	back := in.SensorPosition.Sub(in.HitPoint()).Normalize()
	return back.Dot(in.Hit.Normal)
}

// IntensityModel turns a hit into an echo intensity.
type IntensityModel interface {
	Intensity(in EchoInput, rng RandomSource) float64
}

// ReferenceModel is the baseline echo model: incidence minus range-scaled
// absorption, plus dither and optional noise. Without noise the result is
// not clamped and may leave [0, 1].
type ReferenceModel struct {
	EffectiveRange float64
	NoiseEnabled   bool
	NoiseLevel     float64
}

// NewReferenceModel builds the reference model for a sensor config.
func NewReferenceModel(cfg Config) ReferenceModel {
	return ReferenceModel{
		EffectiveRange: cfg.EffectiveRange(),
		NoiseEnabled:   cfg.NoiseEnabled,
		NoiseLevel:     cfg.NoiseLevel,
	}
}

func (m ReferenceModel) Intensity(in EchoInput, rng RandomSource) float64 {
	return m.finish(in.Incidence(), in, rng)
}

func (m ReferenceModel) finish(incidence float64, in EchoInput, rng RandomSource) float64 {
	dist := in.Hit.Distance / m.EffectiveRange
	v := incidence - in.Hit.Absorption*dist + rng.Uniform(-DitherAmplitude, DitherAmplitude)
	if m.NoiseEnabled {
		v = Clamp01(v + rng.Uniform(-m.NoiseLevel, m.NoiseLevel))
	}
	return v
}

// AcousticModel extends the reference model with range attenuation: the
// incidence term is scaled by the two-way transmission loss gain relative to
// the start of the range window.
type AcousticModel struct {
	ReferenceModel
	MinRange float64
	Water    acoustics.Parameters
}

// NewAcousticModel builds the attenuating model for a sensor config.
func NewAcousticModel(cfg Config, water acoustics.Parameters) AcousticModel {
	return AcousticModel{
		ReferenceModel: NewReferenceModel(cfg),
		MinRange:       cfg.MinRange,
		Water:          water,
	}
}

// Gain is the amplitude ratio of an echo from distance d past the start of
// the range window to one from the window start.
func (m AcousticModel) Gain(d float64) float64 {
	ref := m.Water.TransmissionLoss(m.MinRange)
	tl := m.Water.TransmissionLoss(m.MinRange + d)
	return acoustics.DecibelToVoltage(-2 * (tl - ref))
}

func (m AcousticModel) Intensity(in EchoInput, rng RandomSource) float64 {
	return m.finish(in.Incidence()*m.Gain(in.Hit.Distance), in, rng)
}

// Clamp01 limits v to [0, 1]. NaN is returned unchanged.
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
