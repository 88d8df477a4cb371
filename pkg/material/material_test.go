package material

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// fixedSampler always returns the same value. Only safe for materials that
// draw a single uniform number (Dielectric); rejection sampling would spin.
type fixedSampler struct {
	value float64
}

func (f fixedSampler) Get1D() float64   { return f.value }
func (f fixedSampler) Get2D() core.Vec2 { return core.NewVec2(f.value, f.value) }
func (f fixedSampler) Get3D() core.Vec3 { return core.NewVec3(f.value, f.value, f.value) }

// hitAt builds a hit record for a ray striking the origin with the given outward normal
func hitAt(ray core.Ray, outwardNormal core.Vec3, m core.Material) core.HitRecord {
	hit := core.HitRecord{
		Point:    core.NewVec3(0, 0, 0),
		T:        1.0,
		Material: m,
	}
	hit.SetFaceNormal(ray, outwardNormal)
	return hit
}
