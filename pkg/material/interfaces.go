package material

import (
	"math/rand"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// Material is a tagged-variant BSDF: it can draw an outgoing direction,
// evaluate the BRDF for an arbitrary incoming/outgoing pair, evaluate the
// PDF of its own sampling strategy, and report its emission.
type Material interface {
	// Sample draws an outgoing direction wo given the incoming direction wi
	// and the surface normal. wi points away from the surface, toward the
	// ray origin, following the convention used throughout Evaluate/PDF.
	Sample(wi, normal core.Vec3, rng *rand.Rand) core.Vec3

	// PDF returns the density of Sample having produced wo, with respect to
	// solid angle.
	PDF(wi, wo, normal core.Vec3) float64

	// Evaluate returns the BRDF value f_r(wi, wo, N).
	Evaluate(wi, wo, normal core.Vec3) core.Vec3

	// Emission returns the material's radiant emission; zero for
	// non-emissive materials.
	Emission() core.Vec3

	// IsEmissive reports whether ‖Emission()‖ exceeds the epsilon below
	// which a material is treated as non-emitting.
	IsEmissive() bool
}

// emissiveEpsilon is the threshold below which emission is treated as zero.
const emissiveEpsilon = 1e-6

// HitRecord describes a ray-primitive intersection. A miss is represented
// by the (nil, false) return from Hit rather than by a zero-value
// HitRecord, which is the idiomatic Go equivalent of the "happened" flag.
type HitRecord struct {
	Point     core.Vec3 // world-space point of intersection
	Normal    core.Vec3 // surface normal at the intersection, outward-facing
	UV        core.Vec2 // texture coordinates (unused by the integrator)
	T         float64   // ray parameter at the intersection
	Primitive any       // the primitive that was hit, for identity checks
	Material  Material  // material at the intersection
}

// Emission returns the hit's emitted radiance, or zero if the material at
// the hit point does not emit.
func (h *HitRecord) Emission() core.Vec3 {
	if h.Material == nil {
		return core.Vec3{}
	}
	return h.Material.Emission()
}
