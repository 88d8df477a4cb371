package scene

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// NewStillLifeScene creates four diffuse spheres resting on a large ground sphere
func NewStillLifeScene() *Scene {
	s := New("still-life")
	s.Description = "Four diffuse spheres on a sandy ground sphere"
	s.Sampling = SamplingConfig{
		Width:           1600,
		SamplesPerPixel: 500,
		MaxDepth:        10,
	}

	ground := s.AddMaterial("ground", material.NewLambertian(core.NewVec3(0.92, 0.86, 0.70)))
	red := s.AddMaterial("red", material.NewLambertian(core.NewVec3(0.62, 0.12, 0.09)))
	white := s.AddMaterial("white", material.NewLambertian(core.NewVec3(0.96, 0.94, 0.85)))
	gold := s.AddMaterial("gold", material.NewLambertian(core.NewVec3(0.70, 0.50, 0.20)))
	blue := s.AddMaterial("blue", material.NewLambertian(core.NewVec3(0.27, 0.36, 0.36)))

	s.Add(
		geometry.NewSphere(core.NewVec3(0.0, -100.5, -1.0), 100.0, ground),
		geometry.NewSphere(core.NewVec3(0.0, 0.0, -1.5), 0.5, red),
		geometry.NewSphere(core.NewVec3(-0.6, -0.3, -0.8), 0.2, white),
		geometry.NewSphere(core.NewVec3(0.8, -0.2, -1.0), 0.3, gold),
		geometry.NewSphere(core.NewVec3(-1.5, 0.2, -2.5), 0.7, blue),
	)

	return s
}
