package integrator

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// shadowAcneEpsilon keeps scattered rays from re-hitting the surface they left
const shadowAcneEpsilon = 0.001

// PathColor estimates the color along ray by following a single random path of
// at most maxDepth bounces through world, using the default sky gradient.
func PathColor(ray core.Ray, world core.Hittable, maxDepth int, sampler core.Sampler) core.Vec3 {
	return pathColor(ray, world, maxDepth, sampler, DefaultBackground)
}

// PathTracer implements naive unidirectional path tracing with a gradient background
type PathTracer struct {
	MaxDepth   int
	Background Gradient
}

// NewPathTracer creates a path tracer with the default background
func NewPathTracer(maxDepth int) *PathTracer {
	return &PathTracer{
		MaxDepth:   maxDepth,
		Background: DefaultBackground,
	}
}

// RayColor implements Integrator
func (pt *PathTracer) RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler) core.Vec3 {
	return pathColor(ray, world, pt.MaxDepth, sampler, pt.Background)
}

func pathColor(ray core.Ray, world core.Hittable, maxDepth int, sampler core.Sampler, background Gradient) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)
	emitted := core.Vec3{}

	for depth := 0; depth < maxDepth; depth++ {
		hit, isHit := world.Hit(ray, shadowAcneEpsilon, math.Inf(1))
		if !isHit {
			return emitted.Add(throughput.MultiplyVec(background.Color(ray)))
		}

		emitted = emitted.Add(throughput.MultiplyVec(hit.Material.Emitted()))

		scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
		if !didScatter {
			// Absorbed: keep whatever light was gathered on the way
			return emitted
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce limit reached: the path contributes nothing, including earlier emission
	return core.Vec3{}
}
