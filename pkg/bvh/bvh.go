package bvh

import (
	"math"
	"math/rand"
	"sort"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// Node is a node in the bounding volume hierarchy. Leaf nodes hold exactly
// one primitive; interior nodes hold two children and no primitive. Area is
// the leaf's own surface area for a leaf, or the sum of its children's for
// an interior node, maintained bottom-up so any node can answer area-CDF
// sampling queries over its own subtree.
type Node struct {
	Bounds    core.AABB
	Left      *Node
	Right     *Node
	Primitive Primitive // non-nil only at leaves
	Area      float64
}

// BVH is a bounding volume hierarchy over a fixed set of primitives, built
// once at scene-construction time.
type BVH struct {
	Root *Node
}

// Build constructs a BVH from prims using a recursive median split along
// each node's longest centroid-bounds axis. Leaves always hold exactly one
// primitive: sizes of one and two are handled directly, and every larger
// group splits at the median of its longest axis rather than seeking a
// locally optimal partition. This keeps every leaf's Area meaningful for
// light sampling, at some cost to traversal quality versus a SAH build.
func Build(prims []Primitive) *BVH {
	if len(prims) == 0 {
		return &BVH{}
	}
	cp := make([]Primitive, len(prims))
	copy(cp, prims)
	return &BVH{Root: build(cp)}
}

func build(prims []Primitive) *Node {
	if len(prims) == 1 {
		p := prims[0]
		return &Node{
			Bounds:    p.BoundingBox(),
			Primitive: p,
			Area:      p.Area(),
		}
	}

	if len(prims) == 2 {
		left := build(prims[0:1])
		right := build(prims[1:2])
		return &Node{
			Bounds: left.Bounds.Union(right.Bounds),
			Left:   left,
			Right:  right,
			Area:   left.Area + right.Area,
		}
	}

	var centroidBounds core.AABB
	for i, p := range prims {
		c := p.BoundingBox().Center()
		if i == 0 {
			centroidBounds = core.NewAABB(c, c)
		} else {
			centroidBounds = centroidBounds.Union(core.NewAABB(c, c))
		}
	}
	axis := centroidBounds.LongestAxis()

	sort.Slice(prims, func(i, j int) bool {
		return prims[i].BoundingBox().Center().Axis(axis) < prims[j].BoundingBox().Center().Axis(axis)
	})

	mid := len(prims) / 2
	left := build(prims[:mid])
	right := build(prims[mid:])

	return &Node{
		Bounds: left.Bounds.Union(right.Bounds),
		Left:   left,
		Right:  right,
		Area:   left.Area + right.Area,
	}
}

// Hit finds the closest primitive the ray intersects within [tMin, tMax],
// descending into both children whenever the ray passes the bounds test and
// keeping whichever side reports the nearer hit.
func (b *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if b.Root == nil {
		return nil, false
	}
	return hitNode(b.Root, ray, tMin, tMax)
}

func hitNode(node *Node, ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if !node.Bounds.Hit(ray, tMin, tMax) {
		return nil, false
	}

	if node.Primitive != nil {
		return node.Primitive.Hit(ray, tMin, tMax)
	}

	leftHit, leftOK := hitNode(node.Left, ray, tMin, tMax)
	closest := tMax
	if leftOK {
		closest = leftHit.T
	}

	rightHit, rightOK := hitNode(node.Right, ray, tMin, closest)
	if rightOK {
		return rightHit, true
	}
	return leftHit, leftOK
}

// Sample draws a point on one of the BVH's primitives by an area-CDF
// descent, returning the point, its normal, and the pdf 1/rootArea — the
// same constant for every draw.
//
// The root-area scaling mirrors the reference sampler exactly: it descends
// with p = sqrt(u)*rootArea rather than p = u*rootArea. The sqrt transform
// skews p toward rootArea, so later subtrees in the build's ordering are
// picked more often than their share of the area and the points are not
// spread uniformly by area; the returned pdf does not account for this.
func (b *BVH) Sample(rng *rand.Rand) (point, normal core.Vec3, pdf float64) {
	if b.Root == nil {
		return core.Vec3{}, core.Vec3{}, 0
	}
	p := math.Sqrt(rng.Float64()) * b.Root.Area
	point, normal, pdf = sampleNode(b.Root, p, rng)
	return point, normal, pdf / b.Root.Area
}

// sampleNode mirrors the reference sampler's pdf bookkeeping exactly: a
// leaf's own density (1/Area) is cancelled immediately by its node.Area
// (which equals the primitive's area), so the value threaded back up
// through every interior node is the constant 1 — only BVH.Sample's final
// division by the root's total area turns it back into a real density.
func sampleNode(node *Node, p float64, rng *rand.Rand) (point, normal core.Vec3, pdf float64) {
	if node.Primitive != nil {
		point, normal = node.Primitive.Sample(rng)
		pdf = 1.0 / node.Primitive.Area()
		pdf *= node.Area
		return point, normal, pdf
	}
	if p < node.Left.Area {
		return sampleNode(node.Left, p, rng)
	}
	return sampleNode(node.Right, p-node.Left.Area, rng)
}
