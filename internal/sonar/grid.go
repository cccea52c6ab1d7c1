package sonar

import "sonar-renderer/internal/mathutil"

// Lattice holds the per-capture constants of the rectangular beam × sample
// angular grid. It is not a physical beam pattern: every beam is a single
// azimuth and its vertical samples are spread evenly over the vertical FOV.
type Lattice struct {
	Beams   int
	Samples int

	DegreesPerBeam   float64
	DegreesPerSample float64
	HalfHorizontal   float64
	HalfVertical     float64

	MinRange       float64
	EffectiveRange float64
	RangePerBin    float64
}

// Lattice derives the sampling grid from the config.
func (c Config) Lattice() Lattice {
	samples := c.Samples()
	eff := c.EffectiveRange()
	return Lattice{
		Beams:            c.Beams,
		Samples:          samples,
		DegreesPerBeam:   c.HorizontalFOV / float64(c.Beams),
		DegreesPerSample: c.VerticalFOV / float64(samples),
		HalfHorizontal:   c.HorizontalFOV / 2,
		HalfVertical:     c.VerticalFOV / 2,
		MinRange:         c.MinRange,
		EffectiveRange:   eff,
		RangePerBin:      eff / float64(c.RangeBins),
	}
}

// Ray is one (beam, sample) probe. Direction is a unit vector; the ray
// starts at MinRange in front of the sensor and extends MaxDistance.
type Ray struct {
	Beam   int
	Sample int

	Origin      mathutil.Vec3
	Direction   mathutil.Vec3
	MaxDistance float64
}

// Segment returns the ray direction scaled to its full length.
func (r Ray) Segment() mathutil.Vec3 {
	return r.Direction.Scale(r.MaxDistance)
}

// At returns the point at distance d along the ray.
func (r Ray) At(d float64) mathutil.Vec3 {
	return r.Origin.Add(r.Direction.Scale(d))
}

// Offset returns the spherical offset (radius, azimuth, elevation in
// degrees) of a beam/sample in the sensor frame.
func (l Lattice) Offset(beam, sample int) mathutil.Vec3 {
	return mathutil.Vec3{
		l.MinRange,
		float64(beam)*l.DegreesPerBeam - l.HalfHorizontal,
		float64(sample)*l.DegreesPerSample - l.HalfVertical,
	}
}

// GenerateRay computes the world-space ray of a beam/sample. xf is the
// sensor-to-world transform of the current pose.
func (l Lattice) GenerateRay(beam, sample int, xf mathutil.Mat4) Ray {
	return l.rayFromOffset(beam, sample, l.Offset(beam, sample), xf)
}

func (l Lattice) rayFromOffset(beam, sample int, offset mathutil.Vec3, xf mathutil.Mat4) Ray {
	local := mathutil.SphericalToCartesian(mathutil.SphericalDeg2Rad(offset))
	origin := xf.MulPoint(local)
	return Ray{
		Beam:        beam,
		Sample:      sample,
		Origin:      origin,
		Direction:   origin.Sub(xf.Translation()).Normalize(),
		MaxDistance: l.EffectiveRange,
	}
}

// FrustumCorners returns the four edge rays of the fan in the order
// lower-left, upper-left, upper-right, lower-right.
func (l Lattice) FrustumCorners(xf mathutil.Mat4) [4]Ray {
	corner := func(h, v float64) Ray {
		offset := mathutil.Vec3{l.MinRange, h * l.HalfHorizontal, v * l.HalfVertical}
		return l.rayFromOffset(-1, -1, offset, xf)
	}
	return [4]Ray{
		corner(-1, -1),
		corner(-1, 1),
		corner(1, 1),
		corner(1, -1),
	}
}
