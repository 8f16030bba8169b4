package fractal

import (
	"fmt"
	"math"
)

// Horizontal and vertical pixels per plane unit at Scale 1. The unequal
// divisors center the classic silhouette on a 4:3 canvas.
const (
	unitX = 200.0
	unitY = 150.0

	originRe = -2.0
	originIm = -1.5
)

// Scale bounds. Beyond MaxScale adjacent pixels collapse onto the same
// float64 sample point.
const (
	MinScale = 1e-6
	MaxScale = 1e13
)

// Viewport is the pan offset (in pixels) and zoom scale that map the canvas
// onto the complex plane.
type Viewport struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Scale   float64 `yaml:"scale"`
}

// DefaultViewport is the unpanned, unzoomed view.
func DefaultViewport() Viewport {
	return Viewport{Scale: 1.0}
}

// Point maps pixel (x, y) to its sample point on the complex plane.
func (v Viewport) Point(x, y int) complex128 {
	re := (float64(x)+v.OffsetX)/(unitX*v.Scale) + originRe
	im := (float64(y)+v.OffsetY)/(unitY*v.Scale) + originIm
	return complex(re, im)
}

// Center reports the plane point under the middle of a width x height canvas.
func (v Viewport) Center(width, height int) complex128 {
	re := (float64(width)/2+v.OffsetX)/(unitX*v.Scale) + originRe
	im := (float64(height)/2+v.OffsetY)/(unitY*v.Scale) + originIm
	return complex(re, im)
}

// Validate reports whether the viewport can be used for a dispatch.
func (v Viewport) Validate() error {
	if math.IsNaN(v.Scale) || math.IsInf(v.Scale, 0) || v.Scale <= 0 {
		return fmt.Errorf("%w: scale %g", ErrInvalidViewport, v.Scale)
	}
	if math.IsNaN(v.OffsetX) || math.IsInf(v.OffsetX, 0) ||
		math.IsNaN(v.OffsetY) || math.IsInf(v.OffsetY, 0) {
		return fmt.Errorf("%w: offset (%g, %g)", ErrInvalidViewport, v.OffsetX, v.OffsetY)
	}
	return nil
}

// Centered returns the viewport that places plane point c at the center of
// a width x height canvas at the given scale.
func Centered(c complex128, scale float64, width, height int) Viewport {
	return Viewport{
		OffsetX: (real(c)-originRe)*unitX*scale - float64(width)/2,
		OffsetY: (imag(c)-originIm)*unitY*scale - float64(height)/2,
		Scale:   scale,
	}
}

// Fit returns the unpanned viewport whose scale shows the whole set,
// re in [-2, 1] and im in [-1.5, 1.5], on a width x height canvas.
func Fit(width, height int) Viewport {
	if width <= 1 || height <= 1 {
		return DefaultViewport()
	}
	scale := math.Min(float64(width)/(3*unitX), float64(height)/(3*unitY))
	return Viewport{Scale: scale}
}

// SpanScale returns the scale at which span plane units fill width pixels.
func SpanScale(span float64, width int) float64 {
	if span <= 0 || width <= 0 {
		return 1.0
	}
	return float64(width) / (unitX * span)
}
