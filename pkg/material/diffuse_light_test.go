package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

func TestDiffuseLight_NeverScatters(t *testing.T) {
	light := NewDiffuseLight(core.NewVec3(4, 4, 2), 1.3)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)),
		core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0)),
		core.NewRay(core.NewVec3(2, 2, 2), core.NewVec3(-1, -1, -1)),
	}
	for _, ray := range rays {
		hit := hitAt(ray, ray.Direction.Negate().Normalize(), light)
		if _, scattered := light.Scatter(ray, hit, sampler); scattered {
			t.Errorf("Diffuse light should not scatter ray %v", ray)
		}
	}
}

func TestDiffuseLight_Emitted(t *testing.T) {
	tests := []struct {
		name       string
		color      core.Vec3
		brightness float64
		expected   core.Vec3
	}{
		{"White unit", core.NewVec3(1, 1, 1), 1.0, core.NewVec3(1, 1, 1)},
		{"Warm scaled", core.NewVec3(4, 4, 2), 1.5, core.NewVec3(6, 6, 3)},
		{"Dark", core.NewVec3(1, 0.5, 0.25), 0, core.NewVec3(0, 0, 0)},
		{"Red bright", core.NewVec3(1, 0, 0), 10, core.NewVec3(10, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			light := NewDiffuseLight(tt.color, tt.brightness)
			if got := light.Emitted(); !got.ApproxEquals(tt.expected, 1e-12) {
				t.Errorf("Expected emission %v, got %v", tt.expected, got)
			}
		})
	}
}
