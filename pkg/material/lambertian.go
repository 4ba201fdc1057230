package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// Lambertian is a perfectly diffuse material: the BRDF is a constant
// Kd/π and the sampler draws from the cosine-insensitive hemisphere
// distribution shared with Microfacet, rather than a cosine-weighted one —
// this matches the reference renderer's sampler, not the lower-variance
// cosine-weighted alternative.
type Lambertian struct {
	Kd       core.Vec3 // diffuse albedo
	emission core.Vec3
}

// NewLambertian creates a diffuse material with the given albedo.
func NewLambertian(kd core.Vec3) *Lambertian {
	return &Lambertian{Kd: kd}
}

// NewEmissiveLambertian creates a diffuse material that also emits light,
// for area light sources built from ordinary geometry.
func NewEmissiveLambertian(kd, emission core.Vec3) *Lambertian {
	return &Lambertian{Kd: kd, emission: emission}
}

// Sample draws an outgoing direction from the cosine-insensitive
// hemisphere around normal.
func (l *Lambertian) Sample(wi, normal core.Vec3, rng *rand.Rand) core.Vec3 {
	return core.UniformHemisphereDirection(normal, rng.Float64(), rng.Float64())
}

// PDF returns 1/(2π) on the same side of the surface as the sample, else 0.
func (l *Lambertian) PDF(wi, wo, normal core.Vec3) float64 {
	return core.UniformHemispherePDF(wo, normal)
}

// Evaluate returns Kd/π when wo is on the same side as the normal, else
// the zero vector.
func (l *Lambertian) Evaluate(wi, wo, normal core.Vec3) core.Vec3 {
	if wo.Dot(normal) <= 0 {
		return core.Vec3{}
	}
	return l.Kd.Multiply(1.0 / math.Pi)
}

// Emission returns the material's emitted radiance.
func (l *Lambertian) Emission() core.Vec3 {
	return l.emission
}

// IsEmissive reports whether this material participates in light sampling.
func (l *Lambertian) IsEmissive() bool {
	return !l.emission.NearZero(emissiveEpsilon)
}
