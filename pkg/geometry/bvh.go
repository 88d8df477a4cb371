package geometry

import (
	"sort"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// bvhNode is one entry of the flat node arena. Leaves reference a single
// primitive; internal nodes reference two child nodes by index.
type bvhNode struct {
	box         core.AABB
	left, right int32
	primitive   int32 // -1 for internal nodes
}

func (n *bvhNode) isLeaf() bool {
	return n.primitive >= 0
}

// BVH is a binary bounding volume hierarchy over a fixed set of primitives.
// It is immutable after construction and safe for concurrent queries.
type BVH struct {
	nodes      []bvhNode
	primitives []core.Primitive
}

// BVHStats summarizes the shape of a built hierarchy
type BVHStats struct {
	Nodes      int
	Leaves     int
	MaxDepth   int
	Primitives int
}

// buildItem pairs a primitive with its box so boxes are computed once per build
type buildItem struct {
	index int32
	box   core.AABB
}

// NewBVH constructs a BVH from a slice of primitives. The split axis of every
// subtree is drawn uniformly at random from sampler. The input slice is not
// modified. Every primitive must report a bounding box.
func NewBVH(primitives []core.Primitive, sampler core.Sampler) (*BVH, error) {
	if len(primitives) == 0 {
		return nil, &BuildError{Index: -1, Err: ErrEmptyScene}
	}

	// Validate everything before building any node
	items := make([]buildItem, len(primitives))
	for i, p := range primitives {
		box, ok := p.BoundingBox()
		if !ok {
			return nil, &BuildError{Index: i, Err: ErrUnboundedPrimitive}
		}
		items[i] = buildItem{index: int32(i), box: box}
	}

	bvh := &BVH{
		nodes:      make([]bvhNode, 0, 2*len(primitives)-1),
		primitives: make([]core.Primitive, len(primitives)),
	}
	copy(bvh.primitives, primitives)
	bvh.build(items, sampler)

	return bvh, nil
}

// build appends the subtree over items to the arena and returns its root index
func (b *BVH) build(items []buildItem, sampler core.Sampler) int32 {
	axis := int(3 * sampler.Get1D())
	if axis > 2 {
		axis = 2
	}

	switch len(items) {
	case 1:
		return b.leaf(items[0])
	case 2:
		first, second := items[0], items[1]
		if first.box.Min.Axis(axis) < second.box.Min.Axis(axis) {
			return b.internal(b.leaf(first), b.leaf(second))
		}
		// Ties send the second primitive left
		return b.internal(b.leaf(second), b.leaf(first))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].box.Min.Axis(axis) < items[j].box.Min.Axis(axis)
	})

	mid := len(items) / 2
	left := b.build(items[:mid], sampler)
	right := b.build(items[mid:], sampler)
	return b.internal(left, right)
}

func (b *BVH) leaf(item buildItem) int32 {
	b.nodes = append(b.nodes, bvhNode{
		box:       item.box,
		left:      -1,
		right:     -1,
		primitive: item.index,
	})
	return int32(len(b.nodes) - 1)
}

func (b *BVH) internal(left, right int32) int32 {
	b.nodes = append(b.nodes, bvhNode{
		box:       core.Surrounding(b.nodes[left].box, b.nodes[right].box),
		left:      left,
		right:     right,
		primitive: -1,
	})
	return int32(len(b.nodes) - 1)
}

// root is appended last, after both of its subtrees
func (b *BVH) root() int32 {
	return int32(len(b.nodes) - 1)
}

// Hit returns the closest intersection in [tMin, tMax], if any
func (b *BVH) Hit(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	return b.hitNode(b.root(), ray, tMin, tMax)
}

func (b *BVH) hitNode(index int32, ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	node := &b.nodes[index]
	if !node.box.Hit(ray, tMin, tMax) {
		return core.HitRecord{}, false
	}

	if node.isLeaf() {
		return b.primitives[node.primitive].Hit(ray, tMin, tMax)
	}

	leftHit, hitLeft := b.hitNode(node.left, ray, tMin, tMax)
	if hitLeft {
		tMax = leftHit.T
	}

	// Anything the right subtree returns is at least as close as the left hit
	if rightHit, hitRight := b.hitNode(node.right, ray, tMin, tMax); hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// Bounds returns the box enclosing every primitive
func (b *BVH) Bounds() core.AABB {
	return b.nodes[b.root()].box
}

// BoundingBox implements core.Primitive; a built BVH is always bounded
func (b *BVH) BoundingBox() (core.AABB, bool) {
	return b.Bounds(), true
}

// Stats walks the hierarchy and reports its size and depth
func (b *BVH) Stats() BVHStats {
	stats := BVHStats{
		Nodes:      len(b.nodes),
		Primitives: len(b.primitives),
	}

	type frame struct {
		index int32
		depth int
	}
	stack := []frame{{index: b.root(), depth: 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth > stats.MaxDepth {
			stats.MaxDepth = f.depth
		}

		node := &b.nodes[f.index]
		if node.isLeaf() {
			stats.Leaves++
			continue
		}
		stack = append(stack, frame{node.left, f.depth + 1}, frame{node.right, f.depth + 1})
	}

	return stats
}
