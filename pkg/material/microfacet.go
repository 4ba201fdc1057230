package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// Fixed microfacet parameters. The reference renderer hardcodes these rather
// than exposing them as per-material knobs.
const (
	microfacetRoughness = 0.35
	microfacetIOR       = 1.85
)

// Microfacet is a Cook-Torrance specular lobe layered over a diffuse base,
// combined by Fresnel-weighted energy conservation (ks = F, kd = 1-F). Both
// the specular and diffuse terms share the same cosine-insensitive
// hemisphere sampler as Lambertian; only Evaluate differs.
type Microfacet struct {
	Kd, Ks   core.Vec3
	emission core.Vec3
}

// NewMicrofacet creates a microfacet material with the given diffuse and
// specular reflectances.
func NewMicrofacet(kd, ks core.Vec3) *Microfacet {
	return &Microfacet{Kd: kd, Ks: ks}
}

// Sample draws an outgoing direction from the cosine-insensitive hemisphere
// around normal, same as Lambertian.
func (m *Microfacet) Sample(wi, normal core.Vec3, rng *rand.Rand) core.Vec3 {
	return core.UniformHemisphereDirection(normal, rng.Float64(), rng.Float64())
}

// PDF returns 1/(2π) on the same side of the surface as the sample, else 0.
func (m *Microfacet) PDF(wi, wo, normal core.Vec3) float64 {
	return core.UniformHemispherePDF(wo, normal)
}

// Evaluate combines a GGX/Cook-Torrance specular term with a Fresnel-weighted
// Lambertian diffuse term. wi and wo both point away from the surface (wi
// toward the ray origin, wo toward the next bounce), so the view direction V
// fed to the specular term is wi itself.
func (m *Microfacet) Evaluate(wi, wo, normal core.Vec3) core.Vec3 {
	cosAlpha := normal.Dot(wo)
	if cosAlpha <= 0 {
		return core.Vec3{}
	}

	v := wi
	l := wo
	h := v.Add(l).Normalize()

	d := distributionGGX(normal, h, microfacetRoughness)
	g := geometrySmith(normal, v, l, microfacetRoughness)
	f := fresnelDielectric(wi.Negate(), normal, microfacetIOR)

	denom := 4 * math.Max(normal.Dot(v), 0) * math.Max(normal.Dot(l), 0)
	specular := (d * g * f) / math.Max(denom, 0.001)

	ks := f
	kd := 1.0 - ks
	diffuse := 1.0 / math.Pi

	return m.Ks.Multiply(specular).Add(m.Kd.Multiply(kd * diffuse))
}

// Emission returns the material's emitted radiance.
func (m *Microfacet) Emission() core.Vec3 {
	return m.emission
}

// IsEmissive reports whether this material participates in light sampling.
func (m *Microfacet) IsEmissive() bool {
	return !m.emission.NearZero(emissiveEpsilon)
}

// distributionGGX is the Trowbridge-Reitz normal distribution function.
func distributionGGX(n, h core.Vec3, roughness float64) float64 {
	a := roughness * roughness
	a2 := a * a
	nDotH := math.Max(n.Dot(h), 0)
	nDotH2 := nDotH * nDotH

	nom := a2
	denom := nDotH2*(a2-1.0) + 1.0
	denom = math.Pi * denom * denom

	return nom / math.Max(denom, 1e-7)
}

// geometrySchlickGGX is the Schlick-GGX approximation of the geometry term
// for a single direction.
func geometrySchlickGGX(nDotV, roughness float64) float64 {
	r := roughness + 1.0
	k := (r * r) / 8.0

	nom := nDotV
	denom := nDotV*(1.0-k) + k
	return nom / denom
}

// geometrySmith combines the Schlick-GGX term for the view and light
// directions into the Smith shadow-masking term.
func geometrySmith(n, v, l core.Vec3, roughness float64) float64 {
	nDotV := math.Max(n.Dot(v), 0)
	nDotL := math.Max(n.Dot(l), 0)
	ggx2 := geometrySchlickGGX(nDotV, roughness)
	ggx1 := geometrySchlickGGX(nDotL, roughness)
	return ggx1 * ggx2
}

// fresnelDielectric computes the Fresnel reflectance for an incident
// direction (pointing into the surface, the usual ray-tracing convention)
// against a dielectric interface of the given index of refraction.
func fresnelDielectric(incident, normal core.Vec3, ior float64) float64 {
	cosi := clampFloat(incident.Dot(normal), -1, 1)
	etai, etat := 1.0, ior
	if cosi > 0 {
		etai, etat = etat, etai
	}

	sint := etai / etat * math.Sqrt(math.Max(0, 1-cosi*cosi))
	if sint >= 1 {
		return 1
	}

	cost := math.Sqrt(math.Max(0, 1-sint*sint))
	cosi = math.Abs(cosi)
	rs := ((etat * cosi) - (etai * cost)) / ((etat * cosi) + (etai * cost))
	rp := ((etai * cosi) - (etat * cost)) / ((etai * cosi) + (etat * cost))
	return (rs*rs + rp*rp) / 2
}

func clampFloat(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
