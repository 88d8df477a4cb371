package geometry

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// dummyMaterial is a minimal material for geometry tests
type dummyMaterial struct {
	name string
}

func (d dummyMaterial) Emitted() core.Vec3 { return core.Vec3{} }

func (d dummyMaterial) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

// constSampler returns the same value for every draw, pinning the BVH split axis
type constSampler struct {
	value float64
}

func (c constSampler) Get1D() float64   { return c.value }
func (c constSampler) Get2D() core.Vec2 { return core.NewVec2(c.value, c.value) }
func (c constSampler) Get3D() core.Vec3 { return core.NewVec3(c.value, c.value, c.value) }

// unboundedPrimitive reports no bounding box
type unboundedPrimitive struct{}

func (unboundedPrimitive) Hit(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	return core.HitRecord{}, false
}

func (unboundedPrimitive) BoundingBox() (core.AABB, bool) {
	return core.AABB{}, false
}
