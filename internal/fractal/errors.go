package fractal

import (
	"errors"
	"fmt"
)

// Domain errors for frame evaluation.
var (
	// ErrNoFrame indicates the canvas is degenerate (width or height <= 1).
	// It is the normal result while a window is still being realized.
	ErrNoFrame = errors.New("fractal: no frame produced (degenerate canvas)")

	// ErrFrameUnavailable indicates a frame could not be computed. The
	// previously displayed frame should stay on screen.
	ErrFrameUnavailable = errors.New("fractal: frame unavailable")

	// ErrInvalidViewport indicates a viewport with non-positive or
	// non-finite scale or offsets.
	ErrInvalidViewport = errors.New("fractal: invalid viewport")

	// ErrUnknownScheme indicates a color scheme selector out of range.
	ErrUnknownScheme = errors.New("fractal: unknown color scheme")
)

// FrameError wraps an error with the dimensions of the frame it belongs to.
type FrameError struct {
	Width   int
	Height  int
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %dx%d: %v", e.Width, e.Height, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
