package geometry

import (
	"math"
	"math/rand"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

const triangleEpsilon = 1e-8

// Triangle is a single triangle with vertices in counter-clockwise order,
// intersected via Möller-Trumbore after an upfront back-face rejection.
type Triangle struct {
	V0, V1, V2 core.Vec3
	Material   material.Material

	e1, e2 core.Vec3 // cached edges v1-v0, v2-v0
	normal core.Vec3 // cached face normal
	area   float64   // cached half cross-product magnitude
}

// NewTriangle creates a triangle from three counter-clockwise vertices.
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, Material: mat}
	t.e1 = v1.Subtract(v0)
	t.e2 = v2.Subtract(v0)
	cross := t.e1.Cross(t.e2)
	t.normal = cross.Normalize()
	t.area = cross.Length() * 0.5
	return t
}

// Hit rejects rays arriving from the back face outright, then applies
// Möller-Trumbore against the front face, accepting the hit only when its
// ray parameter lies within [tMin, tMax].
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if ray.Direction.Dot(t.normal) > 0 {
		return nil, false
	}

	pvec := ray.Direction.Cross(t.e2)
	det := t.e1.Dot(pvec)
	if math.Abs(det) < triangleEpsilon {
		return nil, false
	}
	invDet := 1.0 / det

	tvec := ray.Origin.Subtract(t.V0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return nil, false
	}

	qvec := tvec.Cross(t.e1)
	v := ray.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return nil, false
	}

	tParam := t.e2.Dot(qvec) * invDet
	if tParam < tMin || tParam > tMax {
		return nil, false
	}

	return &material.HitRecord{
		Point:     ray.At(tParam),
		Normal:    t.normal,
		T:         tParam,
		Primitive: t,
		Material:  t.Material,
	}, true
}

// GetMaterial returns the triangle's material.
func (t *Triangle) GetMaterial() material.Material {
	return t.Material
}

// BoundingBox returns the triangle's axis-aligned bounds.
func (t *Triangle) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(t.V0, t.V1, t.V2)
}

// Area returns the triangle's surface area.
func (t *Triangle) Area() float64 {
	return t.area
}

// Sample draws a uniform point on the triangle via the sqrt(u1) barycentric
// transform, which makes the map from (u1, u2) onto the triangle
// area-preserving, so the density with respect to area is constant.
func (t *Triangle) Sample(rng *rand.Rand) (point, normal core.Vec3) {
	x, y := core.UniformTriangleBarycentric(rng.Float64(), rng.Float64())
	point = t.V0.Multiply(1 - x).Add(t.V1.Multiply(x * (1 - y))).Add(t.V2.Multiply(x * y))
	return point, t.normal
}
