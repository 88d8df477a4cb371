package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

// Material type names accepted in scene files
const (
	TypeLambertian   = "lambertian"
	TypeMetal        = "metal"
	TypeDielectric   = "dielectric"
	TypeDiffuseLight = "diffuse_light"
)

// File is the on-disk YAML representation of a scene
type File struct {
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description,omitempty"`
	Camera      *CameraFile             `yaml:"camera,omitempty"`
	Image       *ImageFile              `yaml:"image,omitempty"`
	Materials   map[string]MaterialFile `yaml:"materials"`
	Spheres     []SphereFile            `yaml:"spheres"`
	Planes      []PlaneFile             `yaml:"planes,omitempty"`
}

// CameraFile holds the look-at camera. Up defaults to +Y when omitted.
type CameraFile struct {
	LookFrom []float64 `yaml:"look_from,flow"`
	LookAt   []float64 `yaml:"look_at,flow"`
	Up       []float64 `yaml:"up,flow,omitempty"`
	VFov     float64   `yaml:"vfov"`
	Aspect   float64   `yaml:"aspect"`
}

// ImageFile overrides the scene's sampling settings. Zero fields keep the defaults.
type ImageFile struct {
	Width           int `yaml:"width,omitempty"`
	SamplesPerPixel int `yaml:"samples_per_pixel,omitempty"`
	MaxDepth        int `yaml:"max_depth,omitempty"`
}

// MaterialFile describes one material. Which fields apply depends on Type.
type MaterialFile struct {
	Type            string    `yaml:"type"`
	Albedo          []float64 `yaml:"albedo,flow,omitempty"`
	Fuzz            float64   `yaml:"fuzz,omitempty"`
	RefractiveIndex float64   `yaml:"refractive_index,omitempty"`
	Color           []float64 `yaml:"color,flow,omitempty"`
	Brightness      *float64  `yaml:"brightness,omitempty"`
}

// SphereFile places a sphere. A negative radius makes a hollow shell.
type SphereFile struct {
	Center   []float64 `yaml:"center,flow"`
	Radius   float64   `yaml:"radius"`
	Material string    `yaml:"material"`
}

// PlaneFile places an infinite plane. Scenes with planes cannot be built into a BVH.
type PlaneFile struct {
	Point    []float64 `yaml:"point,flow"`
	Normal   []float64 `yaml:"normal,flow"`
	Material string    `yaml:"material"`
}

// Load reads and builds a scene file. Scenes without a name are named after the file.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse builds a scene from YAML bytes
func Parse(data []byte) (*Scene, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a YAML scene definition, rejecting unknown keys
func Decode(r io.Reader) (*Scene, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file File
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("scene file is empty")
		}
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return file.Build()
}

// Build validates the file and constructs the scene it describes
func (f *File) Build() (*Scene, error) {
	s := New(f.Name)
	s.Description = f.Description

	if f.Camera != nil {
		camera, err := f.Camera.build()
		if err != nil {
			return nil, fmt.Errorf("camera: %w", err)
		}
		s.Camera = camera
	}

	if f.Image != nil {
		if f.Image.Width < 0 || f.Image.SamplesPerPixel < 0 || f.Image.MaxDepth < 0 {
			return nil, errors.New("image: settings must not be negative")
		}
		if f.Image.Width != 0 {
			s.Sampling.Width = f.Image.Width
		}
		if f.Image.SamplesPerPixel != 0 {
			s.Sampling.SamplesPerPixel = f.Image.SamplesPerPixel
		}
		if f.Image.MaxDepth != 0 {
			s.Sampling.MaxDepth = f.Image.MaxDepth
		}
	}

	for name, mf := range f.Materials {
		m, err := mf.build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		s.AddMaterial(name, m)
	}

	lookup := func(name string) (core.Material, error) {
		m, ok := s.Materials[name]
		if !ok {
			return nil, fmt.Errorf("unknown material %q", name)
		}
		return m, nil
	}

	for i, sf := range f.Spheres {
		center, err := vec(sf.Center, "center")
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		if sf.Radius == 0 {
			return nil, fmt.Errorf("sphere %d: radius must not be zero", i)
		}
		m, err := lookup(sf.Material)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.Add(geometry.NewSphere(center, sf.Radius, m))
	}

	for i, pf := range f.Planes {
		point, err := vec(pf.Point, "point")
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
		normal, err := vec(pf.Normal, "normal")
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
		if normal.NearZero() {
			return nil, fmt.Errorf("plane %d: normal must not be zero", i)
		}
		m, err := lookup(pf.Material)
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
		s.Add(geometry.NewPlane(point, normal, m))
	}

	if len(s.Primitives) == 0 {
		return nil, errors.New("scene has no spheres or planes")
	}

	return s, nil
}

func (c *CameraFile) build() (renderer.CameraConfig, error) {
	config := renderer.DefaultCameraConfig()

	var err error
	if config.LookFrom, err = vec(c.LookFrom, "look_from"); err != nil {
		return config, err
	}
	if config.LookAt, err = vec(c.LookAt, "look_at"); err != nil {
		return config, err
	}
	if c.Up != nil {
		if config.Up, err = vec(c.Up, "up"); err != nil {
			return config, err
		}
	}
	if c.VFov != 0 {
		config.VFov = c.VFov
	}
	if c.Aspect != 0 {
		config.AspectRatio = c.Aspect
	}

	if config.VFov <= 0 || config.VFov >= 180 {
		return config, fmt.Errorf("vfov must be between 0 and 180 degrees, got %g", config.VFov)
	}
	if config.AspectRatio <= 0 {
		return config, fmt.Errorf("aspect must be positive, got %g", config.AspectRatio)
	}
	if config.LookFrom.Subtract(config.LookAt).NearZero() {
		return config, errors.New("look_from and look_at must differ")
	}
	return config, nil
}

func (m MaterialFile) build() (core.Material, error) {
	switch m.Type {
	case TypeLambertian:
		albedo, err := vec(m.Albedo, "albedo")
		if err != nil {
			return nil, err
		}
		return material.NewLambertian(albedo), nil
	case TypeMetal:
		albedo, err := vec(m.Albedo, "albedo")
		if err != nil {
			return nil, err
		}
		return material.NewMetal(albedo, m.Fuzz), nil
	case TypeDielectric:
		if m.RefractiveIndex <= 0 {
			return nil, fmt.Errorf("refractive_index must be positive, got %g", m.RefractiveIndex)
		}
		return material.NewDielectric(m.RefractiveIndex), nil
	case TypeDiffuseLight:
		color, err := vec(m.Color, "color")
		if err != nil {
			return nil, err
		}
		// An absent brightness means 1; an explicit 0 is a switched-off lamp
		brightness := 1.0
		if m.Brightness != nil {
			brightness = *m.Brightness
		}
		return material.NewDiffuseLight(color, brightness), nil
	case "":
		return nil, errors.New("missing type")
	default:
		return nil, fmt.Errorf("unknown type %q", m.Type)
	}
}

func vec(values []float64, field string) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("%s must have 3 components, got %d", field, len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

func list(v core.Vec3) []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// Marshal encodes a scene as YAML. Every primitive must reference a material
// from the scene's table.
func Marshal(s *Scene) ([]byte, error) {
	file := File{
		Name:        s.Name,
		Description: s.Description,
		Camera: &CameraFile{
			LookFrom: list(s.Camera.LookFrom),
			LookAt:   list(s.Camera.LookAt),
			Up:       list(s.Camera.Up),
			VFov:     s.Camera.VFov,
			Aspect:   s.Camera.AspectRatio,
		},
		Image: &ImageFile{
			Width:           s.Sampling.Width,
			SamplesPerPixel: s.Sampling.SamplesPerPixel,
			MaxDepth:        s.Sampling.MaxDepth,
		},
		Materials: make(map[string]MaterialFile, len(s.Materials)),
	}

	names := make([]string, 0, len(s.Materials))
	for name := range s.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		mf, err := materialFile(s.Materials[name])
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		file.Materials[name] = mf
	}

	for i, p := range s.Primitives {
		switch shape := p.(type) {
		case *geometry.Sphere:
			name, ok := s.MaterialName(shape.Material)
			if !ok {
				return nil, fmt.Errorf("sphere %d: material not in scene table", i)
			}
			file.Spheres = append(file.Spheres, SphereFile{
				Center:   list(shape.Center),
				Radius:   shape.Radius,
				Material: name,
			})
		case *geometry.Plane:
			name, ok := s.MaterialName(shape.Material)
			if !ok {
				return nil, fmt.Errorf("plane %d: material not in scene table", i)
			}
			file.Planes = append(file.Planes, PlaneFile{
				Point:    list(shape.Point),
				Normal:   list(shape.Normal),
				Material: name,
			})
		default:
			return nil, fmt.Errorf("primitive %d: unsupported type %T", i, p)
		}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&file); err != nil {
		return nil, fmt.Errorf("failed to encode scene: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func materialFile(m core.Material) (MaterialFile, error) {
	switch mat := m.(type) {
	case *material.Lambertian:
		return MaterialFile{Type: TypeLambertian, Albedo: list(mat.Albedo)}, nil
	case *material.Metal:
		return MaterialFile{Type: TypeMetal, Albedo: list(mat.Albedo), Fuzz: mat.Fuzz}, nil
	case *material.Dielectric:
		return MaterialFile{Type: TypeDielectric, RefractiveIndex: mat.RefractiveIndex}, nil
	case *material.DiffuseLight:
		brightness := mat.Brightness
		return MaterialFile{Type: TypeDiffuseLight, Color: list(mat.Color), Brightness: &brightness}, nil
	default:
		return MaterialFile{}, fmt.Errorf("unsupported material type %T", m)
	}
}
