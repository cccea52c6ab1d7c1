package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestSphericalRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
	}{
		{"forward right up", Vec3{1, 2, 3}},
		{"behind left down", Vec3{-0.5, -1.25, -4}},
		{"small", Vec3{1e-3, 2e-3, -3e-3}},
		{"mostly lateral", Vec3{10, 0.1, 0.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SphericalToCartesian(CartesianToSpherical(tt.v))
			assert.True(t, got.ApproxEqual(tt.v, eps), "got %v, want %v", got, tt.v)
		})
	}
}

func TestSphericalToCartesianAxes(t *testing.T) {
	forward := SphericalToCartesian(Vec3{2, 0, 0})
	assert.True(t, forward.ApproxEqual(Vec3{0, 0, 2}, eps))

	right := SphericalToCartesian(SphericalDeg2Rad(Vec3{1, 90, 0}))
	assert.True(t, right.ApproxEqual(Vec3{1, 0, 0}, eps))

	up := SphericalToCartesian(SphericalDeg2Rad(Vec3{3, 0, 90}))
	assert.True(t, up.ApproxEqual(Vec3{0, 3, 0}, eps))
}

func TestSphericalDegreeConversionKeepsRadius(t *testing.T) {
	s := Vec3{7.5, 30, -45}
	r := SphericalDeg2Rad(s)
	assert.Equal(t, 7.5, r[0])
	assert.InDelta(t, math.Pi/6, r[1], eps)
	assert.InDelta(t, -math.Pi/4, r[2], eps)
	assert.True(t, SphericalRad2Deg(r).ApproxEqual(s, eps))
}

func TestCartesianToSphericalZeroVector(t *testing.T) {
	assert.NotPanics(t, func() {
		s := CartesianToSpherical(Vec3{})
		assert.Equal(t, 0.0, s[0])
		assert.True(t, math.IsNaN(s[2]))
	})
}

func TestNaNPropagates(t *testing.T) {
	c := SphericalToCartesian(Vec3{math.NaN(), 0, 0})
	for i := range c {
		assert.True(t, math.IsNaN(c[i]))
	}
}

func TestEulerToMat3Order(t *testing.T) {
	tests := []struct {
		name  string
		euler Vec3
		in    Vec3
		want  Vec3
	}{
		{"yaw turns forward right", Vec3{0, 90, 0}, Vec3{0, 0, 1}, Vec3{1, 0, 0}},
		{"roll turns right up", Vec3{0, 0, 90}, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"roll then pitch", Vec3{90, 0, 90}, Vec3{1, 0, 0}, Vec3{0, 0, 1}},
		{"pitch then yaw", Vec3{90, 90, 0}, Vec3{0, 1, 0}, Vec3{1, 0, 0}},
		{"pitch down", Vec3{90, 0, 0}, Vec3{0, 0, 1}, Vec3{0, -1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EulerToMat3(tt.euler[0], tt.euler[1], tt.euler[2]).MulVec3(tt.in)
			assert.True(t, got.ApproxEqual(tt.want, eps), "got %v, want %v", got, tt.want)
		})
	}
}

func TestPoseTransformRoundTrip(t *testing.T) {
	m := PoseTransform(Vec3{1, -2, 3}, Vec3{10, 20, 30})
	p := Vec3{0.3, 0.4, 5}
	world := m.MulPoint(p)
	back := m.InverseRigid().MulPoint(world)
	assert.True(t, back.ApproxEqual(p, eps), "got %v", back)
	assert.Equal(t, Vec3{1, -2, 3}, m.Translation())

	dir := Vec3{0, 0, 1}
	assert.True(t, m.InverseRigid().MulDir(m.MulDir(dir)).ApproxEqual(dir, eps))
	assert.InDelta(t, 1, m.MulDir(dir).Len(), eps, "directions ignore translation")
}

func TestWrapDegrees(t *testing.T) {
	assert.InDelta(t, 350, WrapDegrees(-10), eps)
	assert.InDelta(t, 0, WrapDegrees(720), eps)
	assert.InDelta(t, 20, AngleDelta(350, 10), eps)
	assert.InDelta(t, -20, AngleDelta(10, 350), eps)
	assert.InDelta(t, 180, AngleDelta(0, 180), eps)
	assert.InDelta(t, 180, AngleDelta(0, -180), eps)
	assert.InDelta(t, -90, AngleDelta(45, -45), eps)
}

func TestNormalizeZero(t *testing.T) {
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.InDelta(t, 1, Vec3{3, 4, 0}.Normalize().Len(), eps)
}
