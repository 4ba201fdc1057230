package integrator

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/material"
	"github.com/df07/go-progressive-raytracer/pkg/scene"
)

// selfHitEpsilon keeps a bounce ray from immediately re-intersecting the
// surface it left. shadowPointTolerance is how close a shadow ray's hit
// must land to the sampled light point to count as having reached it,
// rather than having been blocked by (or landed on a different part of)
// the light itself.
const (
	selfHitEpsilon       = 1e-4
	shadowPointTolerance = 1e-2
)

// PathTracingIntegrator is a next-event-estimation path tracer: at every
// non-emissive hit it samples a light directly and also samples the BSDF
// for a Russian-roulette-gated indirect bounce, adding both contributions.
// A light hit only contributes when struck directly by the camera (depth
// 0) — every other light hit is accounted for by the NEE term at the
// previous bounce, and is dropped here to avoid double counting.
type PathTracingIntegrator struct {
	Verbose bool
}

// NewPathTracingIntegrator creates a path tracing integrator.
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{}
}

// RayColor estimates the radiance arriving along ray from the camera.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scn *scene.Scene, rng *rand.Rand) core.Vec3 {
	return pt.castRay(ray, scn, 0, rng)
}

func (pt *PathTracingIntegrator) castRay(ray core.Ray, scn *scene.Scene, depth int, rng *rand.Rand) core.Vec3 {
	hit, isHit := scn.Hit(ray, selfHitEpsilon, math.Inf(1))
	if !isHit {
		return core.Vec3{}
	}

	if hit.Material.IsEmissive() {
		if depth == 0 {
			return hit.Material.Emission()
		}
		return core.Vec3{}
	}

	wi := ray.Direction.Negate()
	direct := pt.directLighting(hit, wi, scn, depth, rng)
	indirect := pt.indirectLighting(hit, wi, scn, depth, rng)
	return direct.Add(indirect)
}

// directLighting samples a point on the scene's emissive surfaces and
// traces a shadow ray toward it, contributing emission*brdf*cosθ*cosθ_L /
// distance² / pdf_light when the shadow ray actually reaches the light.
func (pt *PathTracingIntegrator) directLighting(hit *material.HitRecord, wi core.Vec3, scn *scene.Scene, depth int, rng *rand.Rand) core.Vec3 {
	point, lightNormal, emission, pdfLight := scn.SampleLight(rng)
	if pdfLight <= 0 {
		return core.Vec3{}
	}

	toLight := point.Subtract(hit.Point)
	distSq := toLight.LengthSquared()
	dist := math.Sqrt(distSq)
	wl := toLight.Multiply(1.0 / dist)

	shadowRay := core.NewRay(hit.Point, wl)
	shadowHit, isHit := scn.Hit(shadowRay, selfHitEpsilon, dist+selfHitEpsilon)
	if !isHit || shadowHit.Point.Subtract(point).Length() > shadowPointTolerance {
		return core.Vec3{}
	}

	cosSurface := wl.Dot(hit.Normal)
	cosLight := -wl.Dot(lightNormal)
	if cosSurface <= 0 || cosLight <= 0 {
		return core.Vec3{}
	}

	brdf := hit.Material.Evaluate(wi, wl, hit.Normal)
	contribution := emission.MultiplyVec(brdf).Multiply(cosSurface * cosLight / distSq / pdfLight)
	pt.logf("      pt[%d]   direct: contribution=%v\n", depth, contribution)
	return contribution
}

// indirectLighting samples the BSDF for a new direction and, with
// probability scn.RussianRoulette, recurses one bounce deeper; the
// contribution is scaled by 1/P_RR to keep the estimator unbiased.
func (pt *PathTracingIntegrator) indirectLighting(hit *material.HitRecord, wi core.Vec3, scn *scene.Scene, depth int, rng *rand.Rand) core.Vec3 {
	if rng.Float64() >= scn.RussianRoulette {
		return core.Vec3{}
	}

	wo := hit.Material.Sample(wi, hit.Normal, rng)
	pdf := hit.Material.PDF(wi, wo, hit.Normal)
	if pdf <= 0 {
		return core.Vec3{}
	}

	cosine := wo.Dot(hit.Normal)
	if cosine <= 0 {
		return core.Vec3{}
	}

	bounceRay := core.NewRay(hit.Point, wo)
	incoming := pt.castRay(bounceRay, scn, depth+1, rng)

	brdf := hit.Material.Evaluate(wi, wo, hit.Normal)
	contribution := incoming.MultiplyVec(brdf).Multiply(cosine / pdf / scn.RussianRoulette)
	pt.logf("      pt[%d] indirect: contribution=%v\n", depth, contribution)
	return contribution
}

func (pt *PathTracingIntegrator) logf(format string, a ...interface{}) {
	if pt.Verbose {
		fmt.Printf(format, a...)
	}
}
