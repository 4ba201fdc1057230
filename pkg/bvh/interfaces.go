// Package bvh implements the bounding volume hierarchy shared by every
// primitive collection in the renderer: the top-level scene and each mesh's
// internal triangle hierarchy both build one.
package bvh

import (
	"math/rand"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// Primitive is anything a BVH can hold: a single shape (sphere, triangle) or
// a composite (mesh) that hides its own inner BVH behind the same
// interface. Defining it here, rather than in the geometry package that
// implements it, lets geometry depend on bvh for Mesh's inner hierarchy
// without bvh depending back on geometry.
type Primitive interface {
	// Hit tests the primitive against the ray over the parametric range
	// [tMin, tMax], returning the closest intersection in that range.
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)

	// BoundingBox returns the primitive's world-space bounds.
	BoundingBox() core.AABB

	// Area returns the primitive's surface area, used to weight it during
	// emissive-surface sampling.
	Area() float64

	// Sample draws a point on the primitive's surface and returns the point
	// and its outward normal there. Each implementation documents its own
	// distribution; not all of them are uniform by area.
	Sample(rng *rand.Rand) (point, normal core.Vec3)
}
