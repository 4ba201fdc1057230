// Package render drives the per-tile, per-pixel rendering loop: it
// partitions the framebuffer into a grid of tiles, runs one goroutine per
// tile accumulating spp samples through the integrator, and reports
// progress as tiles complete. None of this is part of the rendering core —
// the integrator is pure per-pixel and would parallelize under any scheme.
package render

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/pterm/pterm"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/integrator"
	"github.com/df07/go-progressive-raytracer/pkg/scene"
)

// TileGridSize is the reference renderer's tile grid dimension on each
// axis (5x5 == 25 tiles total).
const TileGridSize = 5

// Framebuffer is a width*height array of linear RGB radiance, row-major
// with (0,0) at the top-left, matching the camera's pixel convention.
type Framebuffer struct {
	Width, Height int
	Pixels        []core.Vec3
}

func newFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{Width: width, Height: height, Pixels: make([]core.Vec3, width*height)}
}

func (fb *Framebuffer) at(i, j int) *core.Vec3 {
	return &fb.Pixels[j*fb.Width+i]
}

// tile is a rectangular, half-open pixel range [minX,maxX) x [minY,maxY).
type tile struct {
	minX, maxX, minY, maxY int
}

// tiles partitions a width x height image into a gridX x gridY grid (each
// non-positive dimension defaults to TileGridSize). The reference renderer
// strides rows by an X-derived stride and columns by a Y-derived stride —
// a transposed indexing bug. This partitions rows by a row stride and
// columns by a column stride, as a correct tiling scheme should.
func tiles(width, height, gridX, gridY int) []tile {
	if gridX <= 0 {
		gridX = TileGridSize
	}
	if gridY <= 0 {
		gridY = TileGridSize
	}

	strideX := (width + gridX - 1) / gridX
	strideY := (height + gridY - 1) / gridY

	var result []tile
	for y := 0; y < height; y += strideY {
		for x := 0; x < width; x += strideX {
			result = append(result, tile{
				minX: x, maxX: min(x+strideX, width),
				minY: y, maxY: min(y+strideY, height),
			})
		}
	}
	return result
}

// Options configures a render pass.
type Options struct {
	SamplesPerPixel int
	Workers         int // 0 selects runtime.GOMAXPROCS
	TilesX, TilesY  int // 0 selects TileGridSize on that axis
	ShowProgress    bool
}

// Render runs the path tracer over every pixel of scn's image, spawning
// one goroutine per tile via errgroup.Group and accumulating
// opts.SamplesPerPixel samples per pixel. Each tile gets its own PRNG seeded
// distinctly so no random source is shared across goroutines.
func Render(scn *scene.Scene, integ integrator.Integrator, opts Options) *Framebuffer {
	fb := newFramebuffer(scn.Width, scn.Height)
	allTiles := tiles(scn.Width, scn.Height, opts.TilesX, opts.TilesY)

	spp := opts.SamplesPerPixel
	if spp <= 0 {
		spp = 16
	}

	var progressMu sync.Mutex
	var completed int
	var bar *pterm.ProgressbarPrinter
	if opts.ShowProgress {
		pb, _ := pterm.DefaultProgressbar.WithTotal(len(allTiles)).WithTitle("rendering").Start()
		bar = pb
	}

	var g errgroup.Group
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	} else {
		g.SetLimit(runtime.GOMAXPROCS(0))
	}

	for tileIdx, t := range allTiles {
		t := t
		seed := int64(tileIdx)*2654435761 + 1
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed))
			renderTile(fb, scn, integ, t, spp, rng)

			progressMu.Lock()
			completed++
			if bar != nil {
				bar.Increment()
			}
			progressMu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	if bar != nil {
		bar.Stop()
	}

	return fb
}

func renderTile(fb *Framebuffer, scn *scene.Scene, integ integrator.Integrator, t tile, spp int, rng *rand.Rand) {
	for j := t.minY; j < t.maxY; j++ {
		for i := t.minX; i < t.maxX; i++ {
			var sum core.Vec3
			ray := scn.CameraRay(i, j)
			for s := 0; s < spp; s++ {
				sum = sum.Add(integ.RayColor(ray, scn, rng))
			}
			*fb.at(i, j) = sum.Multiply(1.0 / float64(spp))
		}
	}
}
