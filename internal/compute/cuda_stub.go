//go:build !cuda

package compute

import "github.com/san-kum/mandelview/internal/fractal"

type CUDABackend struct {
	cpu *CPUBackend
}

func NewCUDABackend(opts Options) *CUDABackend {
	return &CUDABackend{cpu: NewCPUBackend(opts)}
}

func (c *CUDABackend) Name() string    { return "cuda (not available)" }
func (c *CUDABackend) Available() bool { return false }
func (c *CUDABackend) Cleanup()        {}

func (c *CUDABackend) Render(job Job, buf *fractal.PixelBuffer) error {
	return c.cpu.Render(job, buf)
}
