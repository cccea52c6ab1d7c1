package mathutil

import "math"

// Quat represents a quaternion (x, y, z, w).
type Quat [4]float64

// AxisAngle returns the quaternion rotating by angle (radians) around a unit axis.
func AxisAngle(axis Vec3, angle float64) Quat {
	s, c := math.Sin(angle*0.5), math.Cos(angle*0.5)
	return Quat{axis[0] * s, axis[1] * s, axis[2] * s, c}
}

// Mul returns the Hamilton product a × b (b is applied first).
func (a Quat) Mul(b Quat) Quat {
	ax, ay, az, aw := a[0], a[1], a[2], a[3]
	bx, by, bz, bw := b[0], b[1], b[2], b[3]
	return Quat{
		aw*bx + ax*bw + ay*bz - az*by,
		aw*by - ax*bz + ay*bw + az*bx,
		aw*bz + ax*by - ay*bx + az*bw,
		aw*bw - ax*bx - ay*by - az*bz,
	}
}

// EulerZXYToQuat converts Euler angles (radians) to a quaternion that
// rotates around Z, then X, then Y.
func EulerZXYToQuat(rx, ry, rz float64) Quat {
	qx := AxisAngle(Vec3{1, 0, 0}, rx)
	qy := AxisAngle(Vec3{0, 1, 0}, ry)
	qz := AxisAngle(Vec3{0, 0, 1}, rz)
	return qy.Mul(qx).Mul(qz)
}

// QuatToMat3 converts a quaternion to a 3×3 rotation matrix.
func QuatToMat3(q Quat) Mat3 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy),
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx),
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy),
	}
}
