package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return AABB{Min: min, Max: max}
}

// Hit tests whether ray intersects this AABB using the slab method. Entry
// and exit parameters are computed per axis from the ray's precomputed
// inverse direction; the sign of each direction component picks which of
// the two per-axis roots is the entry vs. exit, avoiding a branch on the
// comparison itself. Inputs are assumed finite with nonzero direction
// components per axis — degenerate rays are the caller's responsibility.
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		o := ray.Origin.Axis(axis)
		invD := ray.Inv.Axis(axis)

		t0 := (aabb.Min.Axis(axis) - o) * invD
		t1 := (aabb.Max.Axis(axis) - o) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}

		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax < tMin {
			return false
		}
	}

	return tMax >= 0
}

// Union returns the smallest AABB enclosing both aabb and other: the
// componentwise min of the two Mins, paired with the componentwise max of
// the two Maxes.
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: aabb.Min.Min(other.Min),
		Max: aabb.Max.Max(other.Max),
	}
}

// Center returns the midpoint between Min and Max — this is what the BVH
// build sorts primitives' centroids by, not a geometric property of
// whatever primitive the box bounds.
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// extent returns the box's length along each axis; negative components mean
// aabb is not a valid box (Min exceeds Max on that axis).
func (aabb AABB) extent() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea is the sum of the box's six face areas. The median-split BVH
// build does not use it.
func (aabb AABB) SurfaceArea() float64 {
	e := aabb.extent()
	return 2.0 * (e.X*e.Y + e.Y*e.Z + e.Z*e.X)
}

// LongestAxis picks which axis (0=X, 1=Y, 2=Z) the BVH build should split
// centroids along: whichever one this box spans the most.
func (aabb AABB) LongestAxis() int {
	e := aabb.extent()
	longest := 0
	for axis := 1; axis < 3; axis++ {
		if e.Axis(axis) > e.Axis(longest) {
			longest = axis
		}
	}
	return longest
}
