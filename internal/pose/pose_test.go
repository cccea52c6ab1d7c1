package pose

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sonar-renderer/internal/mathutil"
)

func TestDefaultMappingRecord(t *testing.T) {
	p := Pose{
		Position: mathutil.Vec3{1, 2, 3},
		Rotation: mathutil.Vec3{10, 20, 30},
	}
	got := DefaultMapping().Record(p)
	assert.Equal(t, Record{3, -1, 2, -30, 10, -20}, got)
	assert.Equal(t, "3,-1,2,-30,10,-20", got.String())
	assert.Equal(t, "3;-1;2;-30;10;-20", got.Format(';'))
}

func TestRecordWrapsRotation(t *testing.T) {
	m := Mapping{RotationX: XPositive, RotationY: YPositive, RotationZ: ZPositive}
	r := m.Record(Pose{Rotation: mathutil.Vec3{-90, 450, 0.5}})
	assert.Equal(t, 270.0, r[3])
	assert.Equal(t, 90.0, r[4])
	assert.Equal(t, 0.5, r[5])
}

func TestAxisOptionPick(t *testing.T) {
	v := mathutil.Vec3{1, 2, 3}
	tests := []struct {
		opt  AxisOption
		want float64
	}{
		{XPositive, 1}, {XNegative, -1},
		{YPositive, 2}, {YNegative, -2},
		{ZPositive, 3}, {ZNegative, -3},
	}
	for _, tt := range tests {
		t.Run(tt.opt.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opt.Pick(v))
		})
	}
	assert.True(t, math.IsNaN(AxisOption(42).Pick(v)))
}

func TestParseAxisOption(t *testing.T) {
	for in, want := range map[string]AxisOption{
		"+x": XPositive, "x": XPositive, "-X": XNegative, " z ": ZPositive, "-z": ZNegative,
	} {
		got, err := ParseAxisOption(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseAxisOption("w")
	assert.Error(t, err)
}

func TestMappingJSON(t *testing.T) {
	data, err := json.Marshal(DefaultMapping())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"position_x":"+z"`)

	var m Mapping
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, DefaultMapping(), m)

	assert.Error(t, json.Unmarshal([]byte(`{"position_x":"q"}`), &m))
}

func TestLerp(t *testing.T) {
	a := Pose{Position: mathutil.Vec3{0, 0, 0}, Rotation: mathutil.Vec3{0, 350, 0}}
	b := Pose{Position: mathutil.Vec3{2, 4, -2}, Rotation: mathutil.Vec3{90, 10, 0}}
	mid := Lerp(a, b, 0.5)
	assert.Equal(t, mathutil.Vec3{1, 2, -1}, mid.Position)
	assert.InDelta(t, 45, mid.Rotation[0], 1e-12)
	assert.InDelta(t, 360, mid.Rotation[1], 1e-12, "short way through 0")
}

func TestTransform(t *testing.T) {
	p := Pose{Position: mathutil.Vec3{0, 1, 0}, Rotation: mathutil.Vec3{0, 90, 0}}
	got := p.Transform().MulPoint(mathutil.Vec3{0, 0, 1})
	assert.True(t, got.ApproxEqual(mathutil.Vec3{1, 1, 0}, 1e-12))
}

func TestToLocal(t *testing.T) {
	p := Pose{Position: mathutil.Vec3{0, 1, 0}, Rotation: mathutil.Vec3{0, 90, 0}}
	assert.True(t, p.ToLocal(mathutil.Vec3{1, 1, 0}).ApproxEqual(mathutil.Vec3{0, 0, 1}, 1e-12))
	assert.True(t, p.ToLocal(mathutil.Vec3{0, 3, 0}).ApproxEqual(mathutil.Vec3{0, 2, 0}, 1e-12))
	assert.True(t, p.DirToLocal(mathutil.Vec3{1, 0, 0}).ApproxEqual(mathutil.Vec3{0, 0, 1}, 1e-12))
	assert.True(t, p.DirToLocal(mathutil.Vec3{0, 0, 1}).ApproxEqual(mathutil.Vec3{-1, 0, 0}, 1e-12))

	q := Pose{Position: mathutil.Vec3{4, -2, 7}, Rotation: mathutil.Vec3{15, -40, 70}}
	local := mathutil.Vec3{0.5, -0.25, 3}
	assert.True(t, q.ToLocal(q.Transform().MulPoint(local)).ApproxEqual(local, 1e-9))
}

func TestLerpWrapsNegativeTurn(t *testing.T) {
	a := Pose{Rotation: mathutil.Vec3{10, 0, 0}}
	b := Pose{Rotation: mathutil.Vec3{330, 0, 0}}
	assert.InDelta(t, -10, Lerp(a, b, 0.5).Rotation[0], 1e-12)
}

func TestRecordFormatNegativeZero(t *testing.T) {
	r := DefaultMapping().Record(Pose{})
	assert.Equal(t, "0,0,0,0,0,0", r.String())
}
