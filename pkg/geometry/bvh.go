package geometry

import (
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BVHNode is a node in the Bounding Volume Hierarchy. Leaves alias the
// same object on both sides.
type BVHNode struct {
	Left  Hittable
	Right Hittable
	bbox  core.AABB
}

// NewBVH constructs a BVH from a slice of objects.
// Panics on an empty slice: there is no meaningful bounding box to build.
func NewBVH(objects []Hittable) *BVHNode {
	if len(objects) == 0 {
		panic("geometry: NewBVH called with no objects")
	}

	// Work on a copy so the caller's slice order is untouched
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return buildBVH(objectsCopy, 0, len(objectsCopy))
}

// NewBVHFromList builds a BVH over the objects of a list
func NewBVHFromList(list *HittableList) *BVHNode {
	return NewBVH(list.Objects)
}

// buildBVH splits objects[start:end] in half along the longest axis of their bounds
func buildBVH(objects []Hittable, start, end int) *BVHNode {
	bbox := core.EmptyAABB
	for i := start; i < end; i++ {
		bbox = core.NewAABBUnion(bbox, objects[i].BoundingBox())
	}

	axis := bbox.LongestAxis()
	node := &BVHNode{bbox: bbox}

	switch span := end - start; span {
	case 1:
		node.Left = objects[start]
		node.Right = objects[start]
	case 2:
		node.Left = objects[start]
		node.Right = objects[start+1]
		if !boxLess(objects[start], objects[start+1], axis) {
			node.Left, node.Right = objects[start+1], objects[start]
		}
	default:
		sub := objects[start:end]
		sort.SliceStable(sub, func(i, j int) bool {
			return boxLess(sub[i], sub[j], axis)
		})

		mid := start + span/2
		node.Left = buildBVH(objects, start, mid)
		node.Right = buildBVH(objects, mid, end)
	}

	return node
}

// boxLess orders objects by the minimum of their bounding box along axis
func boxLess(a, b Hittable, axis int) bool {
	return a.BoundingBox().Axis(axis).Min < b.BoundingBox().Axis(axis).Min
}

// Hit tests if a ray intersects any object in the BVH
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	if !n.bbox.Hit(ray, rayT) {
		return nil, false
	}

	hitLeft, okLeft := n.Left.Hit(ray, rayT, sampler)

	// The right side only needs to beat the left hit
	rightT := rayT
	if okLeft {
		rightT.Max = hitLeft.T
	}
	hitRight, okRight := n.Right.Hit(ray, rightT, sampler)

	if okRight {
		return hitRight, true
	}
	return hitLeft, okLeft
}

// BoundingBox returns the bounding box of everything under this node
func (n *BVHNode) BoundingBox() core.AABB {
	return n.bbox
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes int
	LeafNodes  int
	MaxDepth   int
	AvgDepth   float64
}

// Stats walks the tree and collects node and depth counts
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	n.collectStats(0, &stats)

	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	left, leftIsNode := n.Left.(*BVHNode)
	right, rightIsNode := n.Right.(*BVHNode)

	if !leftIsNode && !rightIsNode {
		stats.LeafNodes++
		stats.AvgDepth += float64(depth)
		return
	}
	if leftIsNode {
		left.collectStats(depth+1, stats)
	}
	if rightIsNode {
		right.collectStats(depth+1, stats)
	}
}
