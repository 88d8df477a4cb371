package integrator

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray from world
	RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler) core.Vec3
}

// Gradient is a vertical sky gradient used for rays that escape the scene
type Gradient struct {
	Bottom core.Vec3 // color looking straight down
	Top    core.Vec3 // color looking straight up
}

// DefaultBackground blends from white at the horizon below to sky blue overhead
var DefaultBackground = Gradient{
	Bottom: core.NewVec3(1.0, 1.0, 1.0),
	Top:    core.NewVec3(0.5, 0.7, 1.0),
}

// Color returns the gradient color seen along ray
func (g Gradient) Color(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return g.Bottom.Multiply(1.0 - t).Add(g.Top.Multiply(t))
}
