package bvh

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// testSphere is a minimal Primitive used to exercise the BVH in isolation
// from the geometry package (which itself depends on bvh for Mesh).
type testSphere struct {
	center core.Vec3
	radius float64
	mat    material.Material
}

func (s *testSphere) BoundingBox() core.AABB {
	r := core.NewVec3(s.radius, s.radius, s.radius)
	return core.NewAABB(s.center.Subtract(r), s.center.Add(r))
}

func (s *testSphere) Area() float64 {
	return 4 * 3.14159265358979 * s.radius * s.radius
}

func (s *testSphere) Sample(rng *rand.Rand) (point, normal core.Vec3) {
	normal = core.NewVec3(rng.Float64()-0.5, rng.Float64()-0.5, rng.Float64()-0.5).Normalize()
	point = s.center.Add(normal.Multiply(s.radius))
	return point, normal
}

func (s *testSphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	oc := ray.Origin.Subtract(s.center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.radius*s.radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil, false
	}
	sqrtDisc := math.Sqrt(disc)
	t := (-b - sqrtDisc) / (2 * a)
	if t < tMin || t > tMax {
		t = (-b + sqrtDisc) / (2 * a)
		if t < tMin || t > tMax {
			return nil, false
		}
	}
	point := ray.At(t)
	normal := point.Subtract(s.center).Normalize()
	return &material.HitRecord{Point: point, Normal: normal, T: t, Primitive: s, Material: s.mat}, true
}

func newTestSpheres(n int) []Primitive {
	prims := make([]Primitive, n)
	for i := 0; i < n; i++ {
		prims[i] = &testSphere{center: core.NewVec3(float64(i)*3, 0, 0), radius: 1}
	}
	return prims
}

func TestBVH_AreaIsSumOfLeaves(t *testing.T) {
	prims := newTestSpheres(7)
	h := Build(prims)
	var total float64
	for _, p := range prims {
		total += p.Area()
	}
	assert.InDelta(t, total, h.Root.Area, 1e-6)
}

func TestBVH_ClosestHitMatchesBruteForce(t *testing.T) {
	prims := newTestSpheres(11)
	h := Build(prims)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		origin := core.NewVec3(rng.Float64()*30-5, rng.Float64()*4-2, 5)
		target := core.NewVec3(rng.Float64()*30-5, rng.Float64()*4-2, -5)
		ray := core.NewRayTo(origin, target)

		bvhHit, bvhOK := h.Hit(ray, 0.001, 1e9)

		var bruteHit *material.HitRecord
		bruteOK := false
		closest := 1e9
		for _, p := range prims {
			if hit, ok := p.Hit(ray, 0.001, closest); ok {
				bruteOK = true
				closest = hit.T
				bruteHit = hit
			}
		}

		require.Equal(t, bruteOK, bvhOK)
		if bruteOK {
			assert.InDelta(t, bruteHit.T, bvhHit.T, 1e-9)
		}
	}
}

func TestBVH_SampleReturnsUniformDensity(t *testing.T) {
	prims := newTestSpheres(5)
	h := Build(prims)
	rng := rand.New(rand.NewSource(7))

	_, _, pdf0 := h.Sample(rng)
	for i := 0; i < 20; i++ {
		_, normal, pdf := h.Sample(rng)
		assert.InDelta(t, pdf0, pdf, 1e-9)
		assert.InDelta(t, 1.0, normal.Length(), 1e-6)
	}
}

func TestBVH_EmptyBVHMisses(t *testing.T) {
	h := Build(nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	_, ok := h.Hit(ray, 0.001, 1e9)
	assert.False(t, ok)
}
