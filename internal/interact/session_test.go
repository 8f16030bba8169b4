package interact

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/san-kum/mandelview/internal/compute"
	"github.com/san-kum/mandelview/internal/fractal"
)

type fakeSurface struct {
	mu      sync.Mutex
	w, h    int
	scheme  fractal.Scheme
	frames  []*fractal.PixelBuffer
	errs    []error
	arrived chan struct{}
}

func newFakeSurface(w, h int) *fakeSurface {
	return &fakeSurface{w: w, h: h, arrived: make(chan struct{}, 16)}
}

func (f *fakeSurface) CanvasSize() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.w, f.h
}

func (f *fakeSurface) ColorScheme() fractal.Scheme {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scheme
}

func (f *fakeSurface) SubmitFrame(buf *fractal.PixelBuffer) {
	f.mu.Lock()
	f.frames = append(f.frames, buf)
	f.mu.Unlock()
	f.arrived <- struct{}{}
}

func (f *fakeSurface) FrameUnavailable(err error) {
	f.mu.Lock()
	f.errs = append(f.errs, err)
	f.mu.Unlock()
	f.arrived <- struct{}{}
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func TestSessionRenderNow(t *testing.T) {
	surface := newFakeSurface(4, 4)
	surface.scheme = 1
	ctrl := NewController(fractal.DefaultViewport())
	s := NewSession(surface, ctrl, compute.NewCPUBackend(compute.Options{Workers: 2}))

	var stats FrameStats
	s.OnFrame(func(fs FrameStats) { stats = fs })

	buf := s.RenderNow(context.Background())
	if buf == nil {
		t.Fatal("expected a frame")
	}
	if !bytes.Equal(buf.Pix, make([]uint8, 48)) {
		t.Errorf("unexpected golden frame: %v", buf.Pix)
	}
	if len(surface.frames) != 1 || surface.frames[0] != buf {
		t.Error("frame was not submitted to the surface")
	}
	if stats.Width != 4 || stats.Scheme != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestSessionDegenerateCanvas(t *testing.T) {
	surface := newFakeSurface(1, 0)
	ctrl := NewController(fractal.DefaultViewport())
	s := NewSession(surface, ctrl, compute.NewCPUBackend(compute.Options{}))

	if buf := s.RenderNow(context.Background()); buf != nil {
		t.Error("expected no frame for degenerate canvas")
	}
	if len(surface.frames) != 0 || len(surface.errs) != 0 {
		t.Error("degenerate canvas should neither submit nor report failure")
	}
}

type brokenBackend struct{}

func (brokenBackend) Name() string    { return "broken" }
func (brokenBackend) Available() bool { return true }
func (brokenBackend) Cleanup()        {}
func (brokenBackend) Render(compute.Job, *fractal.PixelBuffer) error {
	return errors.New("no workers")
}

func TestSessionFrameUnavailable(t *testing.T) {
	surface := newFakeSurface(8, 8)
	ctrl := NewController(fractal.DefaultViewport())
	s := NewSession(surface, ctrl, brokenBackend{})
	s.SetLogger(quietLogger())

	s.RenderNow(context.Background())
	if len(surface.errs) != 1 {
		t.Fatalf("expected one failure report, got %d", len(surface.errs))
	}
	if !errors.Is(surface.errs[0], fractal.ErrFrameUnavailable) {
		t.Errorf("expected ErrFrameUnavailable, got %v", surface.errs[0])
	}
	if len(surface.frames) != 0 {
		t.Error("no frame should be submitted on failure")
	}
}

func TestSessionRequestCoalescing(t *testing.T) {
	surface := newFakeSurface(8, 8)
	ctrl := NewController(fractal.DefaultViewport())
	s := NewSession(surface, ctrl, compute.NewCPUBackend(compute.Options{}))

	for i := 0; i < 10; i++ {
		s.RequestFrame()
	}
	if len(s.reqs) != 1 {
		t.Errorf("expected one pending request, got %d", len(s.reqs))
	}
}

func TestSessionRun(t *testing.T) {
	surface := newFakeSurface(16, 12)
	ctrl := NewController(fractal.Fit(16, 12))
	ctrl.SetLogger(quietLogger())
	s := NewSession(surface, ctrl, compute.NewCPUBackend(compute.Options{}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	ctrl.HandleGesture(Gesture{Kind: Zoom, X: 8, Y: 6, Delta: 1})

	select {
	case <-surface.arrived:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for frame")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	surface.mu.Lock()
	defer surface.mu.Unlock()
	if len(surface.frames) == 0 {
		t.Fatal("no frame submitted")
	}
	if f := surface.frames[0]; f.Width != 16 || f.Height != 12 {
		t.Errorf("unexpected frame size %dx%d", f.Width, f.Height)
	}
}
