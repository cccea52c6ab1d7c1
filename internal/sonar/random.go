package sonar

import "math/rand/v2"

// RandomSource draws the stochastic terms of the intensity model.
type RandomSource interface {
	// Uniform returns a value in [lo, hi).
	Uniform(lo, hi float64) float64
}

type pcgSource struct {
	r *rand.Rand
}

// NewRandomSource returns a seeded PCG source. Distinct streams with the same
// seed are independent, so a capture can give each beam its own stream.
func NewRandomSource(seed, stream uint64) RandomSource {
	return pcgSource{r: rand.New(rand.NewPCG(seed, stream))}
}

func (s pcgSource) Uniform(lo, hi float64) float64 {
	return lo + s.r.Float64()*(hi-lo)
}

// FixedSource always returns the same fraction of the requested interval:
// 0 yields lo, 0.5 the midpoint, 1 yields hi.
type FixedSource float64

func (f FixedSource) Uniform(lo, hi float64) float64 {
	return lo + float64(f)*(hi-lo)
}
