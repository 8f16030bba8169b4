package fractal

import (
	"image"
	"image/color"
)

// PixelBuffer is a height x width x 3 grid of RGB bytes in row-major order.
type PixelBuffer struct {
	Width, Height int
	Pix           []uint8
}

// NewPixelBuffer allocates a zeroed buffer.
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// Bounds returns the full pixel rectangle.
func (b *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

func (b *PixelBuffer) offset(x, y int) int {
	return (y*b.Width + x) * 3
}

// At returns the pixel at (x, y). Out-of-range coordinates read as black.
func (b *PixelBuffer) At(x, y int) RGB {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return RGB{}
	}
	i := b.offset(x, y)
	return RGB{b.Pix[i], b.Pix[i+1], b.Pix[i+2]}
}

// Set writes the pixel at (x, y); out-of-range writes are dropped.
func (b *PixelBuffer) Set(x, y int, c RGB) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	i := b.offset(x, y)
	b.Pix[i] = c.R
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.B
}

// RGBA converts the buffer into an opaque image for image/draw consumers.
func (b *PixelBuffer) RGBA() *image.RGBA {
	img := image.NewRGBA(b.Bounds())
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			c := b.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}
