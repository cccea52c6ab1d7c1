// Package pose holds the sensor pose and turns it into the six-field pose
// record written next to every sonar frame.
package pose

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"sonar-renderer/internal/mathutil"
)

// Pose is the sensor position and Euler orientation (degrees) in the world frame.
type Pose struct {
	Position mathutil.Vec3 `json:"position"`
	Rotation mathutil.Vec3 `json:"rotation"`
}

// Transform returns the sensor-to-world transform.
func (p Pose) Transform() mathutil.Mat4 {
	return mathutil.PoseTransform(p.Position, p.Rotation)
}

// ToLocal maps a world point into the sensor frame.
func (p Pose) ToLocal(world mathutil.Vec3) mathutil.Vec3 {
	return p.Transform().InverseRigid().MulPoint(world)
}

// DirToLocal maps a world direction into the sensor frame.
func (p Pose) DirToLocal(dir mathutil.Vec3) mathutil.Vec3 {
	return p.Transform().InverseRigid().MulDir(dir)
}

// Lerp interpolates position and rotation linearly; rotation takes the
// shortest way around each axis.
func Lerp(a, b Pose, t float64) Pose {
	var out Pose
	for k := 0; k < 3; k++ {
		out.Position[k] = a.Position[k] + (b.Position[k]-a.Position[k])*t
		out.Rotation[k] = a.Rotation[k] + mathutil.AngleDelta(a.Rotation[k], b.Rotation[k])*t
	}
	return out
}

// AxisOption assigns one world axis, with sign, to an output field.
type AxisOption int

const (
	XPositive AxisOption = iota
	XNegative
	YPositive
	YNegative
	ZPositive
	ZNegative
)

var axisNames = [...]string{"+x", "-x", "+y", "-y", "+z", "-z"}

func (a AxisOption) String() string {
	if a < 0 || int(a) >= len(axisNames) {
		return fmt.Sprintf("AxisOption(%d)", int(a))
	}
	return axisNames[a]
}

// ParseAxisOption accepts "+x", "x", "-y", "Z" and similar.
func ParseAxisOption(s string) (AxisOption, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if len(v) == 1 {
		v = "+" + v
	}
	for i, name := range axisNames {
		if v == name {
			return AxisOption(i), nil
		}
	}
	return 0, fmt.Errorf("pose: invalid axis option %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a AxisOption) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AxisOption) UnmarshalText(b []byte) error {
	v, err := ParseAxisOption(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Pick returns the signed component of v selected by a. Unknown options
// yield NaN.
func (a AxisOption) Pick(v mathutil.Vec3) float64 {
	switch a {
	case XPositive:
		return v[0]
	case XNegative:
		return -v[0]
	case YPositive:
		return v[1]
	case YNegative:
		return -v[1]
	case ZPositive:
		return v[2]
	case ZNegative:
		return -v[2]
	default:
		return math.NaN()
	}
}

// Mapping selects the world axis for each of the six record fields.
type Mapping struct {
	PositionX AxisOption `json:"position_x"`
	PositionY AxisOption `json:"position_y"`
	PositionZ AxisOption `json:"position_z"`
	RotationX AxisOption `json:"rotation_x"`
	RotationY AxisOption `json:"rotation_y"`
	RotationZ AxisOption `json:"rotation_z"`
}

// DefaultMapping converts the left-handed Y-up world frame into a
// right-handed Z-up frame.
func DefaultMapping() Mapping {
	return Mapping{
		PositionX: ZPositive,
		PositionY: XNegative,
		PositionZ: YPositive,
		RotationX: ZNegative,
		RotationY: XPositive,
		RotationZ: YNegative,
	}
}

// Record is a resolved pose line: mapped position x/y/z then rotation x/y/z.
type Record [6]float64

// Record resolves p through m. Rotations are reported in [0, 360) before
// the sign of the mapping is applied.
func (m Mapping) Record(p Pose) Record {
	rot := mathutil.Vec3{
		mathutil.WrapDegrees(p.Rotation[0]),
		mathutil.WrapDegrees(p.Rotation[1]),
		mathutil.WrapDegrees(p.Rotation[2]),
	}
	return Record{
		m.PositionX.Pick(p.Position),
		m.PositionY.Pick(p.Position),
		m.PositionZ.Pick(p.Position),
		m.RotationX.Pick(rot),
		m.RotationY.Pick(rot),
		m.RotationZ.Pick(rot),
	}
}

// Format joins the fields with sep using the shortest exact decimal form.
func (r Record) Format(sep rune) string {
	var sb strings.Builder
	sb.Grow(128)
	for i, v := range r {
		if i > 0 {
			sb.WriteRune(sep)
		}
		if v == 0 {
			v = 0 // drop the sign of -0
		}
		sb.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
	return sb.String()
}

// String formats the record comma separated.
func (r Record) String() string {
	return r.Format(',')
}
