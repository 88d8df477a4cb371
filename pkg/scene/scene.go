package scene

import (
	"fmt"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering. The scene owns its
// materials; primitives only reference entries of the material table.
type Scene struct {
	Name        string
	Description string
	Camera      renderer.CameraConfig
	Sampling    SamplingConfig
	Materials   map[string]core.Material
	Primitives  []core.Primitive
}

// SamplingConfig contains the scene's preferred image settings
type SamplingConfig struct {
	Width           int // Image width; height follows from the camera aspect ratio
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		SamplesPerPixel: 100,
		MaxDepth:        10,
	}
}

// New creates an empty scene with default camera and sampling settings
func New(name string) *Scene {
	return &Scene{
		Name:      name,
		Camera:    renderer.DefaultCameraConfig(),
		Sampling:  DefaultSamplingConfig(),
		Materials: make(map[string]core.Material),
	}
}

// AddMaterial registers a named material and returns it
func (s *Scene) AddMaterial(name string, m core.Material) core.Material {
	s.Materials[name] = m
	return m
}

// Add appends primitives to the scene
func (s *Scene) Add(primitives ...core.Primitive) {
	s.Primitives = append(s.Primitives, primitives...)
}

// MaterialName returns the table name of m, if the scene owns it
func (s *Scene) MaterialName(m core.Material) (string, bool) {
	for name, candidate := range s.Materials {
		if candidate == m {
			return name, true
		}
	}
	return "", false
}

// BuildBVH builds the acceleration structure over every primitive
func (s *Scene) BuildBVH(sampler core.Sampler) (*geometry.BVH, error) {
	bvh, err := geometry.NewBVH(s.Primitives, sampler)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", s.Name, err)
	}
	return bvh, nil
}

// World returns the hittable the renderer should trace against, together with
// the time spent building it. With useBVH false the primitives are scanned
// linearly, which also admits unbounded primitives.
func (s *Scene) World(useBVH bool, sampler core.Sampler) (core.Hittable, time.Duration, error) {
	if !useBVH {
		if len(s.Primitives) == 0 {
			return nil, 0, fmt.Errorf("scene %q: %w", s.Name, geometry.ErrEmptyScene)
		}
		return geometry.NewPrimitiveList(s.Primitives...), 0, nil
	}

	start := time.Now()
	bvh, err := s.BuildBVH(sampler)
	if err != nil {
		return nil, 0, err
	}
	return bvh, time.Since(start), nil
}

// RenderConfig derives a renderer configuration from the scene settings
func (s *Scene) RenderConfig() renderer.Config {
	config := renderer.DefaultConfig()
	config.Width = s.Sampling.Width
	config.Height = int(float64(s.Sampling.Width) / s.Camera.AspectRatio)
	config.SamplesPerPixel = s.Sampling.SamplesPerPixel
	config.MaxDepth = s.Sampling.MaxDepth
	return config
}
