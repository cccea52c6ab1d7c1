package sonar

import "sonar-renderer/internal/mathutil"

// Hit is a ray/surface intersection reported by a SceneQuery.
type Hit struct {
	// Distance from the ray origin, in [0, maxDistance].
	Distance float64
	// Normal is the unit surface normal, facing the incoming ray.
	Normal mathutil.Vec3
	// Absorption is the surface absorption coefficient; 0 when the surface
	// declares none.
	Absorption float64
}

// SceneQuery finds the nearest surface along a ray. Implementations must not
// mutate anything the sensor owns and must be safe for concurrent use.
type SceneQuery interface {
	Query(origin, direction mathutil.Vec3, maxDistance float64, mask LayerMask) (Hit, bool)
}

// EmptyScene never reports a hit.
type EmptyScene struct{}

func (EmptyScene) Query(mathutil.Vec3, mathutil.Vec3, float64, LayerMask) (Hit, bool) {
	return Hit{}, false
}
