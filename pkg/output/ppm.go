// Package output turns a linear-radiance framebuffer into an encoded image
// file — a boundary concern, not part of the rendering core.
package output

import (
	"image"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/lmittmann/ppm"

	"github.com/df07/go-progressive-raytracer/pkg/render"
)

// gamma is the reference renderer's tonemapping exponent: clamp each
// channel to [0,1], raise to this power, then scale to a byte. It is not
// the usual 1/2.2 display gamma — preserve the exact exponent to stay
// bit-exact with the reference's output.
const gamma = 0.6

// WritePPM tonemaps fb and writes it to w as a binary (P6) PPM.
func WritePPM(w io.Writer, fb *render.Framebuffer) error {
	return ppm.Encode(w, toImage(fb))
}

// WritePPMFile tonemaps fb and writes it to the named file as a binary PPM.
func WritePPMFile(path string, fb *render.Framebuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WritePPM(f, fb)
}

func toImage(fb *render.Framebuffer) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for j := 0; j < fb.Height; j++ {
		for i := 0; i < fb.Width; i++ {
			c := fb.Pixels[j*fb.Width+i]
			img.SetRGBA(i, j, color.RGBA{
				R: tonemap(c.X),
				G: tonemap(c.Y),
				B: tonemap(c.Z),
				A: 255,
			})
		}
	}
	return img
}

func tonemap(channel float64) uint8 {
	clamped := math.Min(1, math.Max(0, channel))
	return uint8(255 * math.Pow(clamped, gamma))
}
