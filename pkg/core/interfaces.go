package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// HitRecord contains information about a ray-object intersection.
// It is returned by value and lives only as long as the query that produced it.
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Surface normal, always opposing the incoming ray
	T         float64  // Parameter t along the ray
	FrontFace bool     // Whether ray hit the outward side
	Material  Material // Shared material of the hit primitive (not owned)
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The continuation ray
	Attenuation Vec3 // Color attenuation
}

// Material describes how a surface emits and scatters light
type Material interface {
	// Emitted returns the light emitted by the surface (black for non-emitters)
	Emitted() Vec3
	// Scatter returns the attenuation and continuation ray, or false when the
	// incoming ray is absorbed
	Scatter(rayIn Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)
}

// Hittable is anything a ray can be intersected against
type Hittable interface {
	Hit(ray Ray, tMin, tMax float64) (HitRecord, bool)
}

// Primitive is a hittable object that can report its bounds.
// BoundingBox returns false when the primitive is unbounded.
type Primitive interface {
	Hittable
	BoundingBox() (AABB, bool)
}
