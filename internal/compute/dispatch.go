package compute

import (
	"context"
	"fmt"

	"github.com/san-kum/mandelview/internal/fractal"
)

// Dispatch renders one frame on b and blocks until every tile is done.
//
// A degenerate canvas returns fractal.ErrNoFrame without allocating. A done
// context or a backend failure returns an error wrapping
// fractal.ErrFrameUnavailable. Once launched a frame always runs to
// completion.
func Dispatch(ctx context.Context, b Backend, job Job) (*fractal.PixelBuffer, error) {
	if job.Degenerate() {
		return nil, fractal.ErrNoFrame
	}
	if err := job.Viewport.Validate(); err != nil {
		return nil, frameErr(job, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, frameErr(job, err)
	}

	buf := fractal.NewPixelBuffer(job.Width, job.Height)
	if err := b.Render(job, buf); err != nil {
		return nil, frameErr(job, fmt.Errorf("%s: %w", b.Name(), err))
	}
	return buf, nil
}

func frameErr(job Job, err error) error {
	return &fractal.FrameError{
		Width:   job.Width,
		Height:  job.Height,
		Wrapped: fmt.Errorf("%w: %w", fractal.ErrFrameUnavailable, err),
	}
}
