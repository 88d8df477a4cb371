package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
		{"Clamp large positive", 10.0, 1.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			if metal.Fuzz != tt.expectedFuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.expectedFuzz, metal.Fuzz)
			}
		})
	}
}

func TestMetal_PerfectMirror(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	directions := []core.Vec3{
		core.NewVec3(0, -1, -1),
		core.NewVec3(0.3, -2, 0.1),
		core.NewVec3(-5, -0.2, 1),
	}

	for _, d := range directions {
		rayIn := core.NewRay(core.NewVec3(0, 1, 1), d)
		hit := hitAt(rayIn, core.NewVec3(0, 1, 0), metal)

		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		if !didScatter {
			t.Fatalf("Mirror should scatter ray with direction %v", d)
		}

		expected := Reflect(d.Normalize(), hit.Normal)
		if scatter.Scattered.Direction != expected {
			t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scatter.Scattered.Direction)
		}
		if scatter.Attenuation != albedo {
			t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
		}
	}
}

func TestMetal_FuzzyReflection(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.5)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := hitAt(rayIn, core.NewVec3(0, 0, 1), metal)

	var first core.Vec3
	varied := false
	for i := 0; i < 10; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		if !didScatter {
			t.Fatalf("Head-on fuzz 0.5 reflection should always stay above the surface (iteration %d)", i)
		}
		dir := scatter.Scattered.Direction
		if i == 0 {
			first = dir
		} else if !dir.ApproxEquals(first, 1e-10) {
			varied = true
		}
	}
	if !varied {
		t.Error("Fuzzy metal should produce varying reflection directions")
	}
}

func TestMetal_GrazingAbsorption(t *testing.T) {
	// With maximum fuzz a grazing reflection is pushed below the surface part of the time
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(123)))

	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	hit := hitAt(rayIn, core.NewVec3(0, 1, 0), metal)

	absorbed := 0
	for i := 0; i < 1000; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		if !didScatter {
			absorbed++
			continue
		}
		if scatter.Scattered.Direction.Dot(hit.Normal) <= 0 {
			t.Fatalf("Reported scatter below the surface: %v", scatter.Scattered.Direction)
		}
	}
	if absorbed == 0 {
		t.Error("Expected some grazing rays to be absorbed")
	}
}
