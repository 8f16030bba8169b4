package interact

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/san-kum/mandelview/internal/compute"
	"github.com/san-kum/mandelview/internal/fractal"
)

// Surface is the display collaborator: it reports the canvas and scheme
// selection and receives finished frames.
type Surface interface {
	CanvasSize() (width, height int)
	ColorScheme() fractal.Scheme
	SubmitFrame(buf *fractal.PixelBuffer)
	FrameUnavailable(err error)
}

// FrameStats describes the most recent completed frame.
type FrameStats struct {
	Width, Height int
	Viewport      fractal.Viewport
	Scheme        fractal.Scheme
	Elapsed       time.Duration
}

// Session renders frames for a Surface whenever the Controller asks.
type Session struct {
	surface Surface
	ctrl    *Controller
	backend compute.Backend
	reqs    chan struct{}
	logger  *log.Logger

	onFrame func(FrameStats)
}

// NewSession wires ctrl to request frames from the returned session.
func NewSession(surface Surface, ctrl *Controller, backend compute.Backend) *Session {
	s := &Session{
		surface: surface,
		ctrl:    ctrl,
		backend: backend,
		reqs:    make(chan struct{}, 1),
		logger:  log.Default(),
	}
	ctrl.SetRequester(s)
	return s
}

// SetLogger replaces the session logger.
func (s *Session) SetLogger(l *log.Logger) { s.logger = l }

// OnFrame registers a callback run after each submitted frame.
func (s *Session) OnFrame(fn func(FrameStats)) { s.onFrame = fn }

// Backend returns the backend frames are dispatched on.
func (s *Session) Backend() compute.Backend { return s.backend }

// RequestFrame schedules a frame without blocking. Requests made while one
// is already pending collapse into it.
func (s *Session) RequestFrame() {
	select {
	case s.reqs <- struct{}{}:
	default:
	}
}

// Run serves frame requests until ctx is done.
func (s *Session) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.reqs:
			s.RenderNow(ctx)
		}
	}
}

// RenderNow renders and submits one frame synchronously. It returns the
// buffer handed to the surface, or nil when no frame was produced.
func (s *Session) RenderNow(ctx context.Context) *fractal.PixelBuffer {
	w, h := s.surface.CanvasSize()
	job := compute.Job{
		Width:    w,
		Height:   h,
		Viewport: s.ctrl.Viewport(),
		Scheme:   s.surface.ColorScheme(),
	}

	start := time.Now()
	buf, err := compute.Dispatch(ctx, s.backend, job)
	switch {
	case errors.Is(err, fractal.ErrNoFrame):
		return nil
	case err != nil:
		if s.logger != nil {
			s.logger.Printf("frame unavailable: %v", err)
		}
		s.surface.FrameUnavailable(err)
		return nil
	}

	elapsed := time.Since(start)
	s.surface.SubmitFrame(buf)
	if s.onFrame != nil {
		s.onFrame(FrameStats{
			Width:    w,
			Height:   h,
			Viewport: job.Viewport,
			Scheme:   job.Scheme,
			Elapsed:  elapsed,
		})
	}
	return buf
}
