package scene

import (
	"math"

	"sonar-renderer/internal/mathutil"
)

// hitEpsilon rejects self-intersections at the ray origin.
const hitEpsilon = 1e-9

// Shape is a surface that can be intersected by a ray. Intersect returns the
// nearest distance in (hitEpsilon, maxDistance] and the outward normal.
type Shape interface {
	Intersect(origin, dir mathutil.Vec3, maxDistance float64) (float64, mathutil.Vec3, bool)
}

// Plane is an infinite plane through Point.
type Plane struct {
	Point  mathutil.Vec3
	Normal mathutil.Vec3
}

func (p Plane) Intersect(origin, dir mathutil.Vec3, maxDistance float64) (float64, mathutil.Vec3, bool) {
	n := p.Normal.Normalize()
	denom := n.Dot(dir)
	if math.Abs(denom) < 1e-12 {
		return 0, mathutil.Vec3{}, false
	}
	t := p.Point.Sub(origin).Dot(n) / denom
	if t <= hitEpsilon || t > maxDistance {
		return 0, mathutil.Vec3{}, false
	}
	return t, n, true
}

// Quad is a finite rectangle centred on Center. Up fixes the in-plane
// orientation; HalfSize is (half width, half height).
type Quad struct {
	Center   mathutil.Vec3
	Normal   mathutil.Vec3
	Up       mathutil.Vec3
	HalfSize [2]float64
}

func (q Quad) Intersect(origin, dir mathutil.Vec3, maxDistance float64) (float64, mathutil.Vec3, bool) {
	t, n, ok := Plane{Point: q.Center, Normal: q.Normal}.Intersect(origin, dir, maxDistance)
	if !ok {
		return 0, n, false
	}
	up := q.Up.Sub(n.Scale(q.Up.Dot(n))).Normalize()
	if up == (mathutil.Vec3{}) {
		return 0, n, false
	}
	right := up.Cross(n)
	local := origin.Add(dir.Scale(t)).Sub(q.Center)
	if math.Abs(local.Dot(right)) > q.HalfSize[0] || math.Abs(local.Dot(up)) > q.HalfSize[1] {
		return 0, n, false
	}
	return t, n, true
}

// Sphere is a solid sphere.
type Sphere struct {
	Center mathutil.Vec3
	Radius float64
}

func (s Sphere) Intersect(origin, dir mathutil.Vec3, maxDistance float64) (float64, mathutil.Vec3, bool) {
	oc := origin.Sub(s.Center)
	a := dir.Dot(dir)
	halfB := oc.Dot(dir)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := halfB*halfB - a*c
	if disc < 0 {
		return 0, mathutil.Vec3{}, false
	}
	sqrtD := math.Sqrt(disc)

	root := (-halfB - sqrtD) / a
	if root <= hitEpsilon || root > maxDistance {
		root = (-halfB + sqrtD) / a
		if root <= hitEpsilon || root > maxDistance {
			return 0, mathutil.Vec3{}, false
		}
	}
	p := origin.Add(dir.Scale(root))
	return root, p.Sub(s.Center).Scale(1 / s.Radius), true
}

// Box is an axis-aligned box.
type Box struct {
	Min mathutil.Vec3
	Max mathutil.Vec3
}

func (b Box) Intersect(origin, dir mathutil.Vec3, maxDistance float64) (float64, mathutil.Vec3, bool) {
	tNear, tFar := math.Inf(-1), math.Inf(1)
	nearAxis, farAxis := -1, -1
	for k := 0; k < 3; k++ {
		if math.Abs(dir[k]) < 1e-15 {
			if origin[k] < b.Min[k] || origin[k] > b.Max[k] {
				return 0, mathutil.Vec3{}, false
			}
			continue
		}
		t1 := (b.Min[k] - origin[k]) / dir[k]
		t2 := (b.Max[k] - origin[k]) / dir[k]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear, nearAxis = t1, k
		}
		if t2 < tFar {
			tFar, farAxis = t2, k
		}
	}
	if tNear > tFar {
		return 0, mathutil.Vec3{}, false
	}

	t, axis := tNear, nearAxis
	if t <= hitEpsilon {
		// Origin inside the box: report the exit face.
		t, axis = tFar, farAxis
	}
	if t <= hitEpsilon || t > maxDistance || axis < 0 {
		return 0, mathutil.Vec3{}, false
	}

	var n mathutil.Vec3
	n[axis] = -math.Copysign(1, dir[axis])
	return t, n, true
}
