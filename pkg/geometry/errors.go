package geometry

import (
	"errors"
	"fmt"
)

var (
	// ErrUnboundedPrimitive is returned when a primitive without a bounding box is given to the BVH builder
	ErrUnboundedPrimitive = errors.New("unbounded primitive")
	// ErrEmptyScene is returned when the BVH builder is given no primitives
	ErrEmptyScene = errors.New("empty scene")
)

// BuildError describes why a BVH could not be constructed.
// Index is the offending primitive, or -1 when the failure is not tied to one.
type BuildError struct {
	Index int
	Err   error
}

func (e *BuildError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("bvh build failed: %v", e.Err)
	}
	return fmt.Sprintf("bvh build failed: primitive %d: %v", e.Index, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
