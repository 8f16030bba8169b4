package compute

import (
	"fmt"
	"image"
	"sync"

	"github.com/san-kum/mandelview/internal/fractal"
)

// CPUBackend renders tiles on a fixed pool of goroutines.
type CPUBackend struct {
	workers  int
	tileSize int
}

func NewCPUBackend(opts Options) *CPUBackend {
	opts = opts.withDefaults()
	return &CPUBackend{
		workers:  opts.Workers,
		tileSize: opts.TileSize,
	}
}

func (c *CPUBackend) Name() string    { return fmt.Sprintf("cpu (%d workers)", c.workers) }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}

// Workers reports the pool size.
func (c *CPUBackend) Workers() int { return c.workers }

// TileSize reports the edge length of a work unit.
func (c *CPUBackend) TileSize() int { return c.tileSize }

func (c *CPUBackend) Render(job Job, buf *fractal.PixelBuffer) error {
	tiles := SplitTiles(buf.Bounds(), c.tileSize, c.tileSize)

	if len(tiles) == 1 || c.workers == 1 {
		return c.renderSerial(tiles, job, buf)
	}
	return c.renderParallel(tiles, job, buf)
}

func (c *CPUBackend) renderSerial(tiles []image.Rectangle, job Job, buf *fractal.PixelBuffer) (err error) {
	defer recoverTile(&err)
	for _, t := range tiles {
		fractal.RenderTile(buf, t, job.Viewport, job.Scheme)
	}
	return nil
}

func (c *CPUBackend) renderParallel(tiles []image.Rectangle, job Job, buf *fractal.PixelBuffer) error {
	workers := min(c.workers, len(tiles))
	work := make(chan image.Rectangle, len(tiles))
	for _, t := range tiles {
		work <- t
	}
	close(work)

	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			defer recoverTile(&errs[worker])

			for t := range work {
				fractal.RenderTile(buf, t, job.Viewport, job.Scheme)
			}
		}(w)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func recoverTile(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("tile worker panicked: %v", r)
	}
}
