package mathutil

import "math"

// Spherical coordinates are stored in a Vec3 as (radius, azimuth, elevation).
// Azimuth is the horizontal angle and elevation the vertical angle, both
// measured from the forward (+Z) axis; +Y is up.

// SphericalToCartesian converts (radius, azimuth, elevation) in radians to a
// Cartesian point.
func SphericalToCartesian(s Vec3) Vec3 {
	r, az, el := s[0], s[1], s[2]
	return Vec3{
		r * math.Sin(az) * math.Cos(el),
		r * math.Sin(el),
		r * math.Cos(az) * math.Cos(el),
	}
}

// CartesianToSpherical is the inverse of SphericalToCartesian. The zero
// vector yields a NaN elevation.
func CartesianToSpherical(v Vec3) Vec3 {
	r := v.Len()
	return Vec3{
		r,
		math.Atan2(v[0], v[2]),
		math.Asin(v[1] / r),
	}
}

// SphericalDeg2Rad converts the angular components to radians; the radius
// passes through unchanged.
func SphericalDeg2Rad(s Vec3) Vec3 {
	return Vec3{s[0], Deg2Rad(s[1]), Deg2Rad(s[2])}
}

// SphericalRad2Deg converts the angular components to degrees.
func SphericalRad2Deg(s Vec3) Vec3 {
	return Vec3{s[0], Rad2Deg(s[1]), Rad2Deg(s[2])}
}
