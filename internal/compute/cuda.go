//go:build cuda

package compute

/*
#cgo CFLAGS: -I/opt/cuda/include
#cgo LDFLAGS: -L/opt/cuda/lib64 -L${SRCDIR} -lcudart -lkernels -lstdc++
#include <stdlib.h>
#include <stdint.h>

extern int cuda_device_count();
extern const char* cuda_device_name_get();
extern int mandelbrot_counts_gpu(uint16_t* counts, int width, int height,
	double offset_x, double offset_y, double scale, int max_iter);
*/
import "C"

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/san-kum/mandelview/internal/fractal"
)

// CUDABackend computes escape counts on the device and colors them on the
// host, so the color formulas exist once.
type CUDABackend struct {
	available  bool
	deviceName string
	workers    int
	cpu        *CPUBackend
}

func NewCUDABackend(opts Options) *CUDABackend {
	opts = opts.withDefaults()
	count := int(C.cuda_device_count())
	name := ""
	if count > 0 {
		name = C.GoString(C.cuda_device_name_get())
	}
	return &CUDABackend{
		available:  count > 0,
		deviceName: name,
		workers:    opts.Workers,
		cpu:        NewCPUBackend(opts),
	}
}

func (c *CUDABackend) Name() string {
	if c.available {
		return "cuda (" + c.deviceName + ")"
	}
	return "cuda (not available)"
}

func (c *CUDABackend) Available() bool { return c.available }
func (c *CUDABackend) Cleanup()        {}

func (c *CUDABackend) Render(job Job, buf *fractal.PixelBuffer) error {
	if !c.available {
		return c.cpu.Render(job, buf)
	}

	counts := make([]uint16, buf.Width*buf.Height)
	var pinner runtime.Pinner
	pinner.Pin(&counts[0])
	rc := C.mandelbrot_counts_gpu(
		(*C.uint16_t)(unsafe.Pointer(&counts[0])),
		C.int(buf.Width),
		C.int(buf.Height),
		C.double(job.Viewport.OffsetX),
		C.double(job.Viewport.OffsetY),
		C.double(job.Viewport.Scale),
		C.int(fractal.MaxIter),
	)
	pinner.Unpin()
	if rc != 0 {
		return fmt.Errorf("cuda kernel failed with code %d", int(rc))
	}

	ParallelFor(buf.Height, 8, c.workers, func(start, end int) {
		fractal.ColorCounts(buf, counts, job.Scheme, start, end)
	})
	return nil
}
