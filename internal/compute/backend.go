package compute

import (
	"fmt"
	"runtime"

	"github.com/san-kum/mandelview/internal/fractal"
)

// DefaultTileSize matches the 16x16 thread blocks of the GPU kernel.
const DefaultTileSize = 16

// Job describes one frame.
type Job struct {
	Width    int
	Height   int
	Viewport fractal.Viewport
	Scheme   fractal.Scheme
}

// Degenerate reports whether the canvas is too small to produce a frame.
func (j Job) Degenerate() bool {
	return j.Width <= 1 || j.Height <= 1
}

// Backend fills a freshly allocated buffer with a complete frame.
type Backend interface {
	Name() string
	Available() bool
	Render(job Job, buf *fractal.PixelBuffer) error
	Cleanup()
}

// Options tunes backend construction. Zero values pick defaults.
type Options struct {
	Workers  int
	TileSize int
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.TileSize <= 0 {
		o.TileSize = DefaultTileSize
	}
	return o
}

// AutoSelectBackend picks CUDA if a device is present, else the CPU pool.
func AutoSelectBackend(opts Options) Backend {
	cuda := NewCUDABackend(opts)
	if cuda.Available() {
		return cuda
	}
	return NewCPUBackend(opts)
}

// NewBackend builds a backend by name: "auto", "cpu" or "cuda".
func NewBackend(name string, opts Options) (Backend, error) {
	switch name {
	case "", "auto":
		return AutoSelectBackend(opts), nil
	case "cpu":
		return NewCPUBackend(opts), nil
	case "cuda":
		cuda := NewCUDABackend(opts)
		if !cuda.Available() {
			return nil, fmt.Errorf("compute: cuda backend requested but no device available")
		}
		return cuda, nil
	default:
		return nil, fmt.Errorf("compute: unknown backend %q", name)
	}
}

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{"auto", "cpu", "cuda"}
}
