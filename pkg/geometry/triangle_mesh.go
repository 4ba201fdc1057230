package geometry

import (
	"math/rand"

	"github.com/df07/go-progressive-raytracer/pkg/bvh"
	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// Mesh is a collection of triangles sharing one material, intersected
// through its own inner BVH rather than linearly — so a mesh nests into the
// scene's top-level BVH as a single primitive while still getting
// logarithmic intersection cost against its own geometry.
type Mesh struct {
	triangles []bvh.Primitive
	inner     *bvh.BVH
	bbox      core.AABB
	area      float64
	material  material.Material
}

// NewMesh builds a mesh from a flat vertex array and a face index array
// (three indices per triangle, into vertices).
func NewMesh(vertices []core.Vec3, faces []int, mat material.Material) *Mesh {
	if len(faces)%3 != 0 {
		panic("geometry: face indices must be a multiple of 3")
	}

	numTriangles := len(faces) / 3
	triangles := make([]bvh.Primitive, numTriangles)

	var bbox core.AABB
	var area float64
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		if i0 < 0 || i1 < 0 || i2 < 0 || i0 >= len(vertices) || i1 >= len(vertices) || i2 >= len(vertices) {
			panic("geometry: face index out of bounds")
		}

		tri := NewTriangle(vertices[i0], vertices[i1], vertices[i2], mat)
		triangles[i] = tri
		area += tri.Area()

		if i == 0 {
			bbox = tri.BoundingBox()
		} else {
			bbox = bbox.Union(tri.BoundingBox())
		}
	}

	return &Mesh{
		triangles: triangles,
		inner:     bvh.Build(triangles),
		bbox:      bbox,
		area:      area,
		material:  mat,
	}
}

// Hit delegates to the mesh's inner BVH.
func (m *Mesh) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return m.inner.Hit(ray, tMin, tMax)
}

// GetMaterial returns the material shared by every triangle in the mesh.
func (m *Mesh) GetMaterial() material.Material {
	return m.material
}

// BoundingBox returns the mesh's overall bounds.
func (m *Mesh) BoundingBox() core.AABB {
	return m.bbox
}

// Area returns the sum of the mesh's triangle areas.
func (m *Mesh) Area() float64 {
	return m.area
}

// Sample draws a point on the mesh's surface by delegating to the inner
// BVH's area-CDF sampler, which inherits that sampler's sqrt(u) descent and
// so is not uniform by area across triangles.
func (m *Mesh) Sample(rng *rand.Rand) (point, normal core.Vec3) {
	point, normal, _ = m.inner.Sample(rng)
	return point, normal
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.triangles)
}
