package geometry

import (
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BVH is a node of a bounding volume hierarchy. Leaves hold a single object;
// internal nodes own exactly two children. The tree is immutable once built.
type BVH struct {
	Box  core.AABB
	Size int // number of leaf objects below this node

	leaf        Hittable
	left, right *BVH
}

type bvhItem struct {
	object Hittable
	box    core.AABB
	hasBox bool
}

// NewBVH builds a hierarchy over objects for rays in the time interval [time0, time1].
// Splits are chosen by the surface area heuristic along the longest axis.
// Objects without a bounding box are reported to logger and never culled.
func NewBVH(objects []Hittable, time0, time1 float64, logger core.Logger) (*BVH, error) {
	if len(objects) == 0 {
		return nil, fmt.Errorf("bvh from zero objects: %w", core.ErrInvalidInput)
	}
	if logger == nil {
		logger = core.NopLogger()
	}

	items := make([]bvhItem, len(objects))
	missing := 0
	for i, object := range objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			missing++
			box = core.InfiniteAABB()
		}
		items[i] = bvhItem{object: object, box: box, hasBox: ok}
	}
	if missing > 0 {
		logger.Printf("bvh: %d of %d objects have no bounding box, treating them as unbounded\n", missing, len(objects))
	}

	return buildBVH(items), nil
}

func buildBVH(items []bvhItem) *BVH {
	if len(items) == 1 {
		return &BVH{Box: items[0].box, Size: 1, leaf: items[0].object}
	}

	box := items[0].box
	for _, item := range items[1:] {
		box = box.Union(item.box)
	}

	sortItems(items, box.LongestAxis())

	mid := sahSplit(items)
	left := buildBVH(items[:mid])
	right := buildBVH(items[mid:])

	return &BVH{
		Box:   left.Box.Union(right.Box),
		Size:  left.Size + right.Size,
		left:  left,
		right: right,
	}
}

// sortItems orders bounded items by their box minimum on axis, followed by
// the unbounded items in their original order
func sortItems(items []bvhItem, axis core.Axis) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].hasBox && !items[j].hasBox
	})
	bounded := 0
	for bounded < len(items) && items[bounded].hasBox {
		bounded++
	}
	prefix := items[:bounded]
	sort.SliceStable(prefix, func(i, j int) bool {
		return prefix[i].box.Min.Get(axis) < prefix[j].box.Min.Get(axis)
	})
}

// sahSplit returns the index of the first item of the right partition. The cost
// of splitting after item i is (i+1)*area(left) + (n-i-1)*area(right).
// When no split has a finite cost the items are split at the median.
func sahSplit(items []bvhItem) int {
	n := len(items)

	leftArea := make([]float64, n)
	running := items[0].box
	for i := 0; i < n; i++ {
		if i > 0 {
			running = running.Union(items[i].box)
		}
		leftArea[i] = running.SurfaceArea()
	}

	rightArea := make([]float64, n)
	running = items[n-1].box
	for i := n - 1; i >= 0; i-- {
		if i < n-1 {
			running = running.Union(items[i].box)
		}
		rightArea[i] = running.SurfaceArea()
	}

	best := -1
	bestCost := math.Inf(1)
	for i := 0; i < n-1; i++ {
		cost := float64(i+1)*leftArea[i] + float64(n-i-1)*rightArea[i+1]
		if cost < bestCost {
			bestCost = cost
			best = i
		}
	}

	if best < 0 {
		return n / 2
	}
	return best + 1
}

// Hit returns the closest hit in the tree. The right subtree is only searched
// up to the left subtree's hit distance.
func (b *BVH) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	if !b.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}
	if b.leaf != nil {
		return b.leaf.Hit(ray, tMin, tMax, sampler)
	}

	leftHit, hitLeft := b.left.Hit(ray, tMin, tMax, sampler)
	if hitLeft {
		tMax = leftHit.T
	}
	rightHit, hitRight := b.right.Hit(ray, tMin, tMax, sampler)
	if hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the root box
func (b *BVH) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return b.Box, true
}

// PDFValue averages the leaf densities so a tree of lights samples like a flat list
func (b *BVH) PDFValue(origin, direction core.Vec3) float64 {
	if b.leaf != nil {
		return b.leaf.PDFValue(origin, direction)
	}
	total := float64(b.Size)
	return (float64(b.left.Size)*b.left.PDFValue(origin, direction) +
		float64(b.right.Size)*b.right.PDFValue(origin, direction)) / total
}

// Random picks a leaf uniformly and samples it
func (b *BVH) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	node := b
	for node.leaf == nil {
		if core.SampleIndex(sampler, node.Size) < node.left.Size {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.leaf.Random(origin, sampler)
}

// Depth returns the height of the tree
func (b *BVH) Depth() int {
	if b.leaf != nil {
		return 1
	}
	return 1 + max(b.left.Depth(), b.right.Depth())
}

func (*BVH) sealed() {}
