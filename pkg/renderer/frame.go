package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RGB is an 8-bit pixel
type RGB struct {
	R, G, B uint8
}

// Frame is a rendered image, row-major with row 0 at the top
type Frame struct {
	Width  int
	Height int
	Pixels []RGB
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{Width: width, Height: height, Pixels: make([]RGB, width*height)}
}

// At returns the pixel at column x, row y
func (f *Frame) At(x, y int) RGB {
	return f.Pixels[y*f.Width+x]
}

// Set stores the pixel at column x, row y
func (f *Frame) Set(x, y int, c RGB) {
	f.Pixels[y*f.Width+x] = c
}

// Image adapts the frame to an opaque *image.RGBA
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			p := f.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}

// ARGB packs the frame as 0xAARRGGBB words with alpha 255
func (f *Frame) ARGB() []uint32 {
	out := make([]uint32, len(f.Pixels))
	for i, p := range f.Pixels {
		out[i] = 0xFF000000 | uint32(p.R)<<16 | uint32(p.G)<<8 | uint32(p.B)
	}
	return out
}

// ToRGB converts a linear color to an 8-bit pixel: NaN channels become 0,
// gamma 2 is applied and each channel is clamped to [0, 0.999] before
// scaling by 256.
func ToRGB(c core.Vec3) RGB {
	c = c.ReplaceNaN().Max(core.Vec3{}).GammaCorrect(2.0).Clamp(0.0, 0.999)
	return RGB{
		R: uint8(256 * c.X),
		G: uint8(256 * c.Y),
		B: uint8(256 * c.Z),
	}
}
