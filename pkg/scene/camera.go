package scene

import (
	"math"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// CameraRay generates the primary ray through pixel (i, j) — 0-indexed,
// origin top-left, sampled at the pixel center. The x-axis negation in the
// direction is not a typo: it matches the reference renderer's convention.
func (s *Scene) CameraRay(i, j int) core.Ray {
	aspect := float64(s.Width) / float64(s.Height)
	scale := math.Tan(s.FOVDegrees * math.Pi / 180 / 2)

	x := (2*(float64(i)+0.5)/float64(s.Width) - 1) * aspect * scale
	y := (1 - 2*(float64(j)+0.5)/float64(s.Height)) * scale

	dir := core.NewVec3(-x, y, 1).Normalize()
	return core.NewRay(s.CameraPosition, dir)
}
