package scene

import (
	"github.com/df07/go-progressive-raytracer/pkg/bvh"
	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/geometry"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// Cornell-box dimensions and camera placement, matching the reference
// renderer's fixed eye position and field of view.
const (
	cornellWidth  = 552.8
	cornellHeight = 548.8
	cornellDepth  = 559.2
	cornellFOV    = 40.0
)

var cornellPanelEmission = core.NewVec3(47.8, 38.6, 31.1)

// quad builds the two triangles of a parallelogram spanned by edge vectors
// u, v from corner, wound so the face normal is normalize(u × v) — the same
// corner/u/v convention as the reference renderer's ground-quad helper.
func quad(corner, u, v core.Vec3, mat material.Material) []bvh.Primitive {
	p00 := corner
	p10 := corner.Add(u)
	p11 := corner.Add(u).Add(v)
	p01 := corner.Add(v)
	return []bvh.Primitive{
		geometry.NewTriangle(p00, p10, p11, mat),
		geometry.NewTriangle(p00, p11, p01, mat),
	}
}

// NewCornellBoxScene builds the canonical box of unit-albedo diffuse walls
// with one emissive ceiling panel used by the end-to-end render scenarios:
// a floor, ceiling, back wall, and red/green side walls in the traditional
// arrangement, plus a near-square emissive panel recessed just below the
// ceiling. Every wall's winding is chosen so its normal faces into the box.
func NewCornellBoxScene(width, height int) *Scene {
	white := material.NewLambertian(core.NewVec3(1, 1, 1))
	red := material.NewLambertian(core.NewVec3(1, 0, 0))
	green := material.NewLambertian(core.NewVec3(0, 1, 0))
	light := material.NewEmissiveLambertian(core.Vec3{}, cornellPanelEmission)

	w, h, d := cornellWidth, cornellHeight, cornellDepth

	var prims []bvh.Primitive

	prims = append(prims, quad( // floor, normal +y
		core.NewVec3(0, 0, 0), core.NewVec3(0, 0, d), core.NewVec3(w, 0, 0), white)...)
	prims = append(prims, quad( // ceiling, normal -y
		core.NewVec3(0, h, 0), core.NewVec3(w, 0, 0), core.NewVec3(0, 0, d), white)...)
	prims = append(prims, quad( // back wall, normal -z
		core.NewVec3(0, 0, d), core.NewVec3(0, h, 0), core.NewVec3(w, 0, 0), white)...)
	prims = append(prims, quad( // left wall, normal +x
		core.NewVec3(0, 0, 0), core.NewVec3(0, h, 0), core.NewVec3(0, 0, d), red)...)
	prims = append(prims, quad( // right wall, normal -x
		core.NewVec3(w, 0, 0), core.NewVec3(0, 0, d), core.NewVec3(0, h, 0), green)...)

	// Emissive panel centered in the ceiling, recessed by one unit so it
	// doesn't coincide with the ceiling plane itself.
	pw, pd := w*0.24, d*0.24
	px0 := w/2 - pw/2
	pz0 := d/2 - pd/2
	py := h - 1.0
	prims = append(prims, quad( // panel, normal -y (matches ceiling)
		core.NewVec3(px0, py, pz0), core.NewVec3(pw, 0, 0), core.NewVec3(0, 0, pd), light)...)

	cameraPos := core.NewVec3(w/2, h/2-5, -800)
	return New(prims, width, height, cornellFOV, cameraPos, 0, 0.9)
}

// NewSingleWallScene is a minimal scene for the no-light scenario: a single
// diffuse white wall facing the camera, with no emissive surface at all.
func NewSingleWallScene(width, height int) *Scene {
	white := material.NewLambertian(core.NewVec3(1, 1, 1))
	wallTris := quad(
		core.NewVec3(-10, -10, 1), core.NewVec3(0, 20, 0), core.NewVec3(20, 0, 0), white)
	cameraPos := core.NewVec3(0, 0, 0)
	return New(wallTris, width, height, cornellFOV, cameraPos, 0, 0.9)
}
