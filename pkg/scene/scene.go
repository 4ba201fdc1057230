// Package scene owns the primitive registry, the global BVH built over it,
// and emissive-area light sampling for next-event estimation.
package scene

import (
	"math/rand"
	"sort"

	"github.com/df07/go-progressive-raytracer/pkg/bvh"
	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// Scene holds everything the integrator needs: the primitive registry and
// its BVH, the camera parameters, and the Russian-roulette continuation
// probability. MaxDepth is carried for API completeness but unused — the
// integrator's recursion terminates solely by Russian roulette.
type Scene struct {
	Primitives []bvh.Primitive
	Lights     []bvh.Primitive // the subset of Primitives that are emissive

	BVH *bvh.BVH

	Width, Height   int
	FOVDegrees      float64
	CameraPosition  core.Vec3
	MaxDepth        int
	RussianRoulette float64

	lightPrefixArea []float64 // running sum of Lights[i].Area(), parallel to Lights
	lightTotalArea  float64
}

// materialHolder is implemented by every concrete geometry primitive
// (Sphere, Triangle, Mesh) but deliberately not required by bvh.Primitive
// itself, so the BVH package stays free of any dependency on materials.
type materialHolder interface {
	GetMaterial() material.Material
}

// New builds a scene's BVH and precomputes its emissive-area prefix sums
// from a flat primitive list. Russian roulette defaults to 0.9 when rr <= 0.
func New(primitives []bvh.Primitive, width, height int, fovDegrees float64, cameraPos core.Vec3, maxDepth int, rr float64) *Scene {
	if rr <= 0 {
		rr = 0.9
	}

	s := &Scene{
		Primitives:      primitives,
		BVH:             bvh.Build(primitives),
		Width:           width,
		Height:          height,
		FOVDegrees:      fovDegrees,
		CameraPosition:  cameraPos,
		MaxDepth:        maxDepth,
		RussianRoulette: rr,
	}

	for _, p := range primitives {
		mat := materialOf(p)
		if mat == nil || !mat.IsEmissive() {
			continue
		}
		s.lightTotalArea += p.Area()
		s.Lights = append(s.Lights, p)
		s.lightPrefixArea = append(s.lightPrefixArea, s.lightTotalArea)
	}

	return s
}

func materialOf(p bvh.Primitive) material.Material {
	if h, ok := p.(materialHolder); ok {
		return h.GetMaterial()
	}
	return nil
}

// Hit intersects a ray against the scene's BVH.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return s.BVH.Hit(ray, tMin, tMax)
}

// HasLights reports whether the scene contains any emissive primitive.
func (s *Scene) HasLights() bool {
	return s.lightTotalArea > 0
}

// SampleLight draws a point uniformly over the union of every emissive
// primitive's surface, weighted by area. Unlike BVH.Sample's hierarchical
// sqrt-transform descent, this is a flat linear-CDF scan over emissive
// primitives only — the scene's own, simpler sampling strategy, distinct
// from the BVH's internal one. The prefix-sum array turns the reference's
// per-call linear rebuild into a single binary search.
func (s *Scene) SampleLight(rng *rand.Rand) (point, normal, emission core.Vec3, pdf float64) {
	if !s.HasLights() {
		return core.Vec3{}, core.Vec3{}, core.Vec3{}, 0
	}

	u := rng.Float64() * s.lightTotalArea
	idx := sort.SearchFloat64s(s.lightPrefixArea, u)
	if idx >= len(s.Lights) {
		idx = len(s.Lights) - 1
	}

	light := s.Lights[idx]
	point, normal = light.Sample(rng)
	emission = materialOf(light).Emission()
	pdf = 1.0 / s.lightTotalArea
	return point, normal, emission, pdf
}
