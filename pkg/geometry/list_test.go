package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

func TestPrimitiveList_ClosestHit(t *testing.T) {
	near := dummyMaterial{name: "near"}
	far := dummyMaterial{name: "far"}

	// Insert the far sphere first so order does not decide the result
	list := NewPrimitiveList(
		NewSphere(core.NewVec3(0, 0, -10), 1, far),
		NewSphere(core.NewVec3(0, 0, -3), 1, near),
	)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, ok := list.Hit(ray, 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit")
	}
	if hit.Material != near {
		t.Errorf("Expected closest sphere, got material %v", hit.Material)
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected t=2, got %f", hit.T)
	}
}

func TestPrimitiveList_Empty(t *testing.T) {
	list := NewPrimitiveList()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if _, ok := list.Hit(ray, 0.001, math.Inf(1)); ok {
		t.Error("Empty list should never be hit")
	}
	if _, ok := list.BoundingBox(); ok {
		t.Error("Empty list should be unbounded")
	}
}

func TestPrimitiveList_BoundingBox(t *testing.T) {
	list := NewPrimitiveList(NewSphere(core.NewVec3(0, 0, 0), 1, dummyMaterial{}))
	list.Add(NewSphere(core.NewVec3(4, 0, 0), 0.5, dummyMaterial{}))

	box, ok := list.BoundingBox()
	if !ok {
		t.Fatal("Expected bounded list")
	}
	expected := core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(4.5, 1, 1))
	if box != expected {
		t.Errorf("Expected %v, got %v", expected, box)
	}

	list.Add(NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), dummyMaterial{}))
	if _, ok := list.BoundingBox(); ok {
		t.Error("A list holding a plane should be unbounded")
	}
}

func TestPrimitiveList_HitsUnboundedPrimitives(t *testing.T) {
	ground := dummyMaterial{name: "ground"}
	list := NewPrimitiveList(
		NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), ground),
		NewSphere(core.NewVec3(0, 0, -5), 0.5, dummyMaterial{}),
	)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, -1))
	hit, ok := list.Hit(ray, 0.001, math.Inf(1))
	if !ok || hit.Material != ground {
		t.Errorf("Expected ground plane hit, got ok=%v material=%v", ok, hit.Material)
	}
}
