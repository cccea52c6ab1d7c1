package mathutil

// Mat4 is a 4×4 matrix stored row-major. Used for sensor-to-world transforms.
type Mat4 [16]float64

// FromMat3Translation builds a 4×4 affine matrix from a 3×3 rotation and translation.
func FromMat3Translation(r Mat3, t Vec3) Mat4 {
	return Mat4{
		r[0], r[1], r[2], t[0],
		r[3], r[4], r[5], t[1],
		r[6], r[7], r[8], t[2],
		0, 0, 0, 1,
	}
}

// PoseTransform returns the local-to-world transform of a body at position
// with Euler rotation given in degrees (see EulerToMat3).
func PoseTransform(position, eulerDeg Vec3) Mat4 {
	return FromMat3Translation(EulerToMat3(eulerDeg[0], eulerDeg[1], eulerDeg[2]), position)
}

// MulPoint transforms a 3D point (w=1) by the 4×4 matrix.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11],
	}
}

// MulDir transforms a direction (w=0), ignoring translation.
func (m Mat4) MulDir(v Vec3) Vec3 {
	return m.Rotation().MulVec3(v)
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}

// Rotation returns the upper-left 3×3 block.
func (m Mat4) Rotation() Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// InverseRigid inverts a rotation+translation matrix, mapping world back
// into the local frame.
func (m Mat4) InverseRigid() Mat4 {
	rt := m.Rotation().Transpose()
	t := rt.MulVec3(m.Translation()).Neg()
	return FromMat3Translation(rt, t)
}
