package core

import (
	"math/rand"
)

// Vec2 represents a 2D sample
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// XorShiftSampler is a 32-bit xorshift generator. It is cheap enough to call
// once per scattering event and is owned by exactly one render worker.
type XorShiftSampler struct {
	state uint32
}

// defaultXorShiftState replaces a zero seed, which would lock the generator at zero
const defaultXorShiftState = 123456789

// NewXorShiftSampler creates a sampler seeded with seed
func NewXorShiftSampler(seed uint32) *XorShiftSampler {
	s := &XorShiftSampler{}
	s.Seed(seed)
	return s
}

// Seed resets the generator state
func (x *XorShiftSampler) Seed(seed uint32) {
	if seed == 0 {
		seed = defaultXorShiftState
	}
	x.state = seed
}

// next advances the generator
func (x *XorShiftSampler) next() uint32 {
	x.state ^= x.state << 13
	x.state ^= x.state >> 17
	x.state ^= x.state << 5
	return x.state
}

// Get1D returns a float64 in [0, 1)
func (x *XorShiftSampler) Get1D() float64 {
	return float64(x.next()) / 4294967296.0
}

// Get2D returns two float64 values in [0, 1)
func (x *XorShiftSampler) Get2D() Vec2 {
	return NewVec2(x.Get1D(), x.Get1D())
}

// Get3D returns three float64 values in [0, 1)
func (x *XorShiftSampler) Get3D() Vec3 {
	return NewVec3(x.Get1D(), x.Get1D(), x.Get1D())
}

// BVHStream is the SeedFor stream reserved for BVH construction. Render rows
// use streams 0 and up.
const BVHStream = -1

// SeedFor mixes a base seed with a stream index (worker id, row, ...) so that
// neighbouring streams do not start from correlated states
func SeedFor(base uint64, stream int) uint32 {
	z := base + uint64(stream)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	return uint32(z) ^ uint32(z>>32)
}

// RandomRange returns a value in [min, max)
func RandomRange(sampler Sampler, min, max float64) float64 {
	return min + (max-min)*sampler.Get1D()
}

// RandomInUnitSphere returns a point strictly inside the unit sphere by rejection
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := NewVec3(
			RandomRange(sampler, -1, 1),
			RandomRange(sampler, -1, 1),
			RandomRange(sampler, -1, 1),
		)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomUnitVector returns a uniformly distributed unit vector
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		p := RandomInUnitSphere(sampler)
		// Points at the origin cannot be normalized
		if !p.NearZero() {
			return p.Normalize()
		}
	}
}
