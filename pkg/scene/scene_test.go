package scene

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-progressive-raytracer/pkg/bvh"
	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/geometry"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

func TestScene_HasLightsReflectsEmissiveContent(t *testing.T) {
	dim := material.NewLambertian(core.NewVec3(1, 1, 1))
	wall := geometry.NewSphere(core.NewVec3(0, 0, 5), 1, dim)
	scn := New([]bvh.Primitive{wall}, 16, 16, 40, core.Vec3{}, 0, 0.9)
	assert.False(t, scn.HasLights())

	emissive := material.NewEmissiveLambertian(core.Vec3{}, core.NewVec3(1, 1, 1))
	light := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, emissive)
	scn2 := New([]bvh.Primitive{wall, light}, 16, 16, 40, core.Vec3{}, 0, 0.9)
	assert.True(t, scn2.HasLights())
}

// Property 6 (area-proportional light sampling): each light's hit rate
// should track its share of total emissive area within a loose tolerance.
func TestScene_SampleLightIsAreaProportional(t *testing.T) {
	small := material.NewEmissiveLambertian(core.Vec3{}, core.NewVec3(1, 1, 1))
	big := material.NewEmissiveLambertian(core.Vec3{}, core.NewVec3(1, 1, 1))

	smallSphere := geometry.NewSphere(core.NewVec3(-10, 0, 0), 1, small) // area 4*pi
	bigSphere := geometry.NewSphere(core.NewVec3(10, 0, 0), 2, big)      // area 16*pi, 4x smaller's

	scn := New([]bvh.Primitive{smallSphere, bigSphere}, 16, 16, 40, core.Vec3{}, 0, 0.9)

	rng := rand.New(rand.NewSource(5))
	const n = 20000
	var bigCount int
	for i := 0; i < n; i++ {
		point, _, _, pdf := scn.SampleLight(rng)
		assert.Greater(t, pdf, 0.0)
		if point.X > 0 {
			bigCount++
		}
	}

	fraction := float64(bigCount) / n
	assert.InDelta(t, 0.8, fraction, 0.03) // 16pi / (4pi+16pi) = 0.8
}

func TestScene_SampleLightOnEmptySceneReturnsZeroPDF(t *testing.T) {
	dim := material.NewLambertian(core.NewVec3(1, 1, 1))
	wall := geometry.NewSphere(core.NewVec3(0, 0, 5), 1, dim)
	scn := New([]bvh.Primitive{wall}, 16, 16, 40, core.Vec3{}, 0, 0.9)

	rng := rand.New(rand.NewSource(1))
	_, _, _, pdf := scn.SampleLight(rng)
	assert.Equal(t, 0.0, pdf)
}

func TestScene_HitDelegatesToBVH(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(1, 1, 1))
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 5), 1, mat)
	scn := New([]bvh.Primitive{sphere}, 16, 16, 40, core.Vec3{}, 0, 0.9)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	hit, isHit := scn.Hit(ray, 0.001, 1000)
	assert.True(t, isHit)
	assert.InDelta(t, 4.0, hit.T, 1e-6)
}

func TestScene_DefaultsRussianRouletteWhenUnset(t *testing.T) {
	scn := New(nil, 16, 16, 40, core.Vec3{}, 0, 0)
	assert.Equal(t, 0.9, scn.RussianRoulette)
}

func TestCameraRay_CentersLookDownPositiveZ(t *testing.T) {
	scn := New(nil, 100, 100, 40, core.NewVec3(1, 2, 3), 0, 0.9)
	ray := scn.CameraRay(50, 50)
	assert.InDelta(t, 1.0, ray.Origin.X, 1e-9)
	assert.Greater(t, ray.Direction.Z, 0.99)
}
