package scene

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

const (
	gridSize    = 4
	gridRadius  = 0.1
	gridSpacing = 0.26
)

// NewGridScene creates a 4x4x4 block of small spheres above a dark ground.
// Each sphere is gold metal, red diffuse, emissive or glass, chosen by a
// generator seeded with seed.
func NewGridScene(seed uint32) *Scene {
	s := New("grid")
	s.Description = "4x4x4 grid of metal, diffuse, emissive and glass spheres"
	s.Camera = renderer.CameraConfig{
		LookFrom:    core.NewVec3(1, 5, 1),
		LookAt:      core.NewVec3(0, 0.1, -2.5),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        30,
		AspectRatio: 16.0 / 9.0,
	}
	s.Sampling = SamplingConfig{
		Width:           1600,
		SamplesPerPixel: 500,
		MaxDepth:        10,
	}

	ground := s.AddMaterial("ground", material.NewLambertian(core.NewVec3(0.1, 0.1, 0.1)))
	glass := s.AddMaterial("glass", material.NewDielectric(1.5))
	gold := s.AddMaterial("gold", material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.05))
	red := s.AddMaterial("red", material.NewLambertian(core.NewVec3(0.9, 0.1, 0.1)))
	emission := s.AddMaterial("emission", material.NewDiffuseLight(core.NewVec3(4.0, 4.0, 2.0), 1.3))

	s.Add(geometry.NewSphere(core.NewVec3(0.0, -100.5, -1.0), 100.0, ground))

	random := core.NewXorShiftSampler(seed)
	offset := core.NewVec3(-0.5, 0.0, -2.5)
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			for k := 0; k < gridSize; k++ {
				position := offset.Add(core.NewVec3(float64(i), float64(j), float64(k)).Multiply(gridSpacing))

				var m core.Material
				switch choose := random.Get1D(); {
				case choose < 0.2:
					m = gold
				case choose < 0.5:
					m = red
				case choose < 0.55:
					m = emission
				default:
					m = glass
				}

				s.Add(geometry.NewSphere(position, gridRadius, m))
			}
		}
	}

	return s
}
