package sonar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sonar-renderer/internal/mathutil"
)

func scenarioConfig() Config {
	return Config{
		HorizontalFOV:            60,
		VerticalFOV:              12,
		MinRange:                 0.1,
		MaxRange:                 5,
		Beams:                    4,
		RangeBins:                4,
		VerticalSampleMultiplier: 1,
		Mask:                     AllLayers,
	}
}

func TestLattice(t *testing.T) {
	l := scenarioConfig().Lattice()
	assert.Equal(t, 4, l.Samples)
	assert.InDelta(t, 15, l.DegreesPerBeam, 1e-12)
	assert.InDelta(t, 3, l.DegreesPerSample, 1e-12)
	assert.InDelta(t, 30, l.HalfHorizontal, 1e-12)
	assert.InDelta(t, 6, l.HalfVertical, 1e-12)
	assert.InDelta(t, 1.225, l.RangePerBin, 1e-12)

	assert.Equal(t, mathutil.Vec3{0.1, -30, -6}, l.Offset(0, 0))
	assert.Equal(t, mathutil.Vec3{0.1, 0, 0}, l.Offset(2, 2))
}

func TestGenerateRayIdentityPose(t *testing.T) {
	l := scenarioConfig().Lattice()
	r := l.GenerateRay(2, 2, mathutil.PoseTransform(mathutil.Vec3{}, mathutil.Vec3{}))

	assert.True(t, r.Origin.ApproxEqual(mathutil.Vec3{0, 0, 0.1}, 1e-12))
	assert.True(t, r.Direction.ApproxEqual(mathutil.Vec3{0, 0, 1}, 1e-12))
	assert.InDelta(t, 4.9, r.MaxDistance, 1e-12)
	assert.InDelta(t, 4.9, r.Segment().Len(), 1e-12)

	left := l.GenerateRay(0, 2, mathutil.PoseTransform(mathutil.Vec3{}, mathutil.Vec3{}))
	assert.Less(t, left.Direction[0], 0.0, "beam 0 looks left")
	assert.InDelta(t, 1, left.Direction.Len(), 1e-12)
}

func TestGenerateRayFollowsPose(t *testing.T) {
	l := scenarioConfig().Lattice()
	xf := mathutil.PoseTransform(mathutil.Vec3{1, 2, 3}, mathutil.Vec3{0, 90, 0})
	r := l.GenerateRay(2, 2, xf)

	assert.True(t, r.Origin.ApproxEqual(mathutil.Vec3{1.1, 2, 3}, 1e-12), "origin %v", r.Origin)
	assert.True(t, r.Direction.ApproxEqual(mathutil.Vec3{1, 0, 0}, 1e-12), "direction %v", r.Direction)
}

func TestFrustumCorners(t *testing.T) {
	l := scenarioConfig().Lattice()
	corners := l.FrustumCorners(mathutil.PoseTransform(mathutil.Vec3{}, mathutil.Vec3{}))

	wantOffsets := []mathutil.Vec3{
		{0.1, -30, -6},
		{0.1, -30, 6},
		{0.1, 30, 6},
		{0.1, 30, -6},
	}
	for i, c := range corners {
		want := mathutil.SphericalToCartesian(mathutil.SphericalDeg2Rad(wantOffsets[i]))
		assert.True(t, c.Origin.ApproxEqual(want, 1e-12), "corner %d", i)
		assert.InDelta(t, 4.9, c.Segment().Len(), 1e-12)
	}
}
