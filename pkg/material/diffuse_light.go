package material

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// DiffuseLight represents a light-emitting material. It terminates every path that reaches it.
type DiffuseLight struct {
	Color      core.Vec3 // Emitted light color
	Brightness float64   // Scale applied to Color
}

// NewDiffuseLight creates a new emissive material
func NewDiffuseLight(color core.Vec3, brightness float64) *DiffuseLight {
	return &DiffuseLight{Color: color, Brightness: brightness}
}

// Emitted returns the emitted light for this material
func (e *DiffuseLight) Emitted() core.Vec3 {
	return e.Color.Multiply(e.Brightness)
}

// Scatter never scatters; lights absorb all incoming rays
func (e *DiffuseLight) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}
