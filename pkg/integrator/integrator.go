// Package integrator implements the recursive light-transport estimator:
// next-event estimation combined with Russian-roulette-terminated indirect
// bounces.
package integrator

import (
	"math/rand"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/scene"
)

// Integrator estimates the radiance arriving along a camera ray.
type Integrator interface {
	RayColor(ray core.Ray, scn *scene.Scene, rng *rand.Rand) core.Vec3
}
