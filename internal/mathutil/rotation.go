package mathutil

import "math"

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}

// WrapDegrees maps an angle in degrees into [0, 360).
func WrapDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// AngleDelta returns the signed shortest turn in degrees from one angle to
// another, in (-180, 180].
func AngleDelta(from, to float64) float64 {
	d := WrapDegrees(to - from)
	if d > 180 {
		d -= 360
	}
	return d
}

// EulerToMat3 builds the rotation for Euler angles given in degrees. The
// rotation is applied around Z first, then X, then Y (R = Ry·Rx·Rz), which
// is the order the pose angles of the sensor are expressed in.
func EulerToMat3(rx, ry, rz float64) Mat3 {
	return QuatToMat3(EulerZXYToQuat(Deg2Rad(rx), Deg2Rad(ry), Deg2Rad(rz)))
}
