package geometry

import (
	"math"
	"math/rand"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// Sphere is a perfect sphere, intersected via the analytic quadratic
// solution rather than anything numerical.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a sphere with the given center, radius and material.
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: mat}
}

// Hit solves the ray-sphere quadratic and accepts the nearer positive root.
// Intersections closer than 0.5 units along the ray are rejected outright,
// independent of tMin — a fixed self-intersection margin carried over from
// the reference renderer rather than the usual epsilon-above-tMin approach.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	l := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(l)
	c := l.Dot(l) - s.Radius*s.Radius

	t0, t1, ok := solveQuadratic(a, b, c)
	if !ok {
		return nil, false
	}
	if t0 < 0 {
		t0 = t1
	}
	if t0 < 0 {
		return nil, false
	}
	if t0 <= 0.5 || t0 > tMax {
		return nil, false
	}

	point := ray.At(t0)
	normal := point.Subtract(s.Center).Normalize()

	return &material.HitRecord{
		Point:     point,
		Normal:    normal,
		T:         t0,
		Primitive: s,
		Material:  s.Material,
	}, true
}

// GetMaterial returns the sphere's material.
func (s *Sphere) GetMaterial() material.Material {
	return s.Material
}

// BoundingBox returns the sphere's axis-aligned bounds.
func (s *Sphere) BoundingBox() core.AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}

// Area returns the sphere's surface area, 4πr².
func (s *Sphere) Area() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}

// Sample draws a point on the sphere's surface: theta spans the full
// azimuth, phi spans the polar angle, and the resulting direction is both
// the sample's offset from center and its outward normal. phi is drawn
// uniformly with no sin(phi) weighting, so points cluster toward the two
// poles on the x axis and the distribution is not uniform by area.
func (s *Sphere) Sample(rng *rand.Rand) (point, normal core.Vec3) {
	theta := 2.0 * math.Pi * rng.Float64()
	phi := math.Pi * rng.Float64()
	dir := core.NewVec3(
		math.Cos(phi),
		math.Sin(phi)*math.Cos(theta),
		math.Sin(phi)*math.Sin(theta),
	)
	return s.Center.Add(dir.Multiply(s.Radius)), dir
}
