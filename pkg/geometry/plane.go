package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal.
// It has no finite bounds and therefore cannot be placed in a BVH;
// scenes containing planes render through a PrimitiveList.
type Plane struct {
	Point    core.Vec3     // A point on the plane
	Normal   core.Vec3     // Unit normal
	Material core.Material // Material of the plane
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, material core.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(),
		Material: material,
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Parallel rays never meet the plane
	if math.Abs(denominator) < 1e-8 {
		return core.HitRecord{}, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return core.HitRecord{}, false
	}

	hitRecord := core.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: p.Material,
	}
	hitRecord.SetFaceNormal(ray, p.Normal)

	return hitRecord, true
}

// BoundingBox reports that a plane is unbounded
func (p *Plane) BoundingBox() (core.AABB, bool) {
	return core.AABB{}, false
}
