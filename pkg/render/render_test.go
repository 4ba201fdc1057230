package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-progressive-raytracer/pkg/integrator"
	"github.com/df07/go-progressive-raytracer/pkg/scene"
)

func TestTiles_CoverEveryPixelExactlyOnce(t *testing.T) {
	width, height := 37, 23 // deliberately not evenly divisible by the grid
	counts := make([][]int, height)
	for j := range counts {
		counts[j] = make([]int, width)
	}

	for _, tl := range tiles(width, height, 0, 0) {
		for j := tl.minY; j < tl.maxY; j++ {
			for i := tl.minX; i < tl.maxX; i++ {
				counts[j][i]++
			}
		}
	}

	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			assert.Equal(t, 1, counts[j][i], "pixel (%d,%d)", i, j)
		}
	}
}

func TestTiles_ProducesAGridOfAtMost25Tiles(t *testing.T) {
	assert.LessOrEqual(t, len(tiles(100, 100, 0, 0)), TileGridSize*TileGridSize)
}

func TestTiles_HonorsExplicitGridOverride(t *testing.T) {
	width, height := 40, 40
	result := tiles(width, height, 2, 4)
	assert.LessOrEqual(t, len(result), 2*4)

	counts := make([][]int, height)
	for j := range counts {
		counts[j] = make([]int, width)
	}
	for _, tl := range result {
		for j := tl.minY; j < tl.maxY; j++ {
			for i := tl.minX; i < tl.maxX; i++ {
				counts[j][i]++
			}
		}
	}
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			assert.Equal(t, 1, counts[j][i], "pixel (%d,%d)", i, j)
		}
	}
}

func TestRender_ProducesFullSizedFramebuffer(t *testing.T) {
	scn := scene.NewSingleWallScene(8, 6)
	integ := integrator.NewPathTracingIntegrator()

	fb := Render(scn, integ, Options{SamplesPerPixel: 2})

	assert.Equal(t, 8, fb.Width)
	assert.Equal(t, 6, fb.Height)
	assert.Len(t, fb.Pixels, 48)
}
