package geometry

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// PrimitiveList is a flat collection of primitives intersected by linear scan.
// It is the reference against which the BVH is checked and the fallback world
// for scenes holding unbounded primitives.
type PrimitiveList struct {
	Primitives []core.Primitive
}

// NewPrimitiveList creates a list holding the given primitives
func NewPrimitiveList(primitives ...core.Primitive) *PrimitiveList {
	return &PrimitiveList{Primitives: primitives}
}

// Add appends a primitive to the list
func (l *PrimitiveList) Add(p core.Primitive) {
	l.Primitives = append(l.Primitives, p)
}

// Hit returns the closest intersection among all primitives
func (l *PrimitiveList) Hit(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	var closest core.HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, p := range l.Primitives {
		if hit, isHit := p.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, hitAnything
}

// BoundingBox returns the union of all primitive boxes. An empty list or a
// list holding any unbounded primitive is unbounded.
func (l *PrimitiveList) BoundingBox() (core.AABB, bool) {
	if len(l.Primitives) == 0 {
		return core.AABB{}, false
	}

	var result core.AABB
	for i, p := range l.Primitives {
		box, ok := p.BoundingBox()
		if !ok {
			return core.AABB{}, false
		}
		if i == 0 {
			result = box
		} else {
			result = core.Surrounding(result, box)
		}
	}
	return result, true
}
