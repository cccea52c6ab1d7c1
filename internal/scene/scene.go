// Package scene is a small analytic scene used as the sonar's ray query
// backend: planes, quads, spheres, boxes and image heightfields, each on a
// visibility layer and tagged with a material.
package scene

import (
	"math"

	"sonar-renderer/internal/mathutil"
	"sonar-renderer/internal/sonar"
)

// Object is one surface in the scene.
type Object struct {
	Name     string
	Layer    int
	Material string
	Shape    Shape
}

// Scene answers sonar ray queries. It is read-only after construction and
// safe for concurrent use.
type Scene struct {
	Objects   []Object
	Materials MaterialResolver
}

// New creates a scene with the default material table.
func New(objects ...Object) *Scene {
	return &Scene{Objects: objects, Materials: DefaultMaterials()}
}

// Query returns the nearest hit among objects whose layer is in mask. The
// reported normal faces the incoming ray and the absorption comes from the
// object's material, or 0 when it has none.
func (s *Scene) Query(origin, direction mathutil.Vec3, maxDistance float64, mask sonar.LayerMask) (sonar.Hit, bool) {
	dir := direction.Normalize()
	if dir == (mathutil.Vec3{}) || math.IsNaN(dir.Len()) || !(maxDistance > 0) {
		return sonar.Hit{}, false
	}

	best := math.Inf(1)
	var hit sonar.Hit
	found := false
	for i := range s.Objects {
		obj := &s.Objects[i]
		if !mask.Has(obj.Layer) || obj.Shape == nil {
			continue
		}
		t, n, ok := obj.Shape.Intersect(origin, dir, maxDistance)
		if !ok || t >= best {
			continue
		}
		if n.Dot(dir) > 0 {
			n = n.Neg()
		}
		best = t
		hit = sonar.Hit{Distance: t, Normal: n, Absorption: s.absorption(obj.Material)}
		found = true
	}
	return hit, found
}

func (s *Scene) absorption(material string) float64 {
	if material == "" || s.Materials == nil {
		return 0
	}
	if m, ok := s.Materials.Resolve(material); ok {
		return m.Absorption
	}
	return 0
}
