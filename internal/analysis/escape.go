package analysis

import (
	"image"
	"runtime"

	"github.com/san-kum/mandelview/internal/compute"
	"github.com/san-kum/mandelview/internal/fractal"
)

// EscapeStats summarizes the escape counts of one frame.
type EscapeStats struct {
	Width, Height int
	// Histogram[n] is the number of pixels that escaped after n steps;
	// Histogram[fractal.MaxIter] counts pixels in the set.
	Histogram []int
	Mean      float64
}

// Total returns the number of pixels counted.
func (s *EscapeStats) Total() int {
	total := 0
	for _, n := range s.Histogram {
		total += n
	}
	return total
}

// InSetFraction is the share of pixels that never escaped.
func (s *EscapeStats) InSetFraction() float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return float64(s.Histogram[fractal.MaxIter]) / float64(total)
}

// Bins folds the histogram into n equal-width buckets over [0, MaxIter),
// leaving in-set pixels out.
func (s *EscapeStats) Bins(n int) []float64 {
	if n <= 0 {
		return nil
	}
	bins := make([]float64, n)
	for count := 0; count < fractal.MaxIter; count++ {
		bins[count*n/fractal.MaxIter] += float64(s.Histogram[count])
	}
	return bins
}

// ComputeEscapeStats evaluates every pixel of a width x height canvas under
// vp, spreading rows over the available CPUs.
func ComputeEscapeStats(width, height int, vp fractal.Viewport) (*EscapeStats, error) {
	if width <= 1 || height <= 1 {
		return nil, fractal.ErrNoFrame
	}
	if err := vp.Validate(); err != nil {
		return nil, err
	}

	counts := make([]uint16, width*height)
	compute.ParallelFor(height, 8, runtime.NumCPU(), func(start, end int) {
		fractal.RenderCounts(counts, width, height, image.Rect(0, start, width, end), vp)
	})

	stats := &EscapeStats{
		Width:     width,
		Height:    height,
		Histogram: make([]int, fractal.MaxIter+1),
	}
	sum := 0
	for _, c := range counts {
		stats.Histogram[c]++
		sum += int(c)
	}
	stats.Mean = float64(sum) / float64(len(counts))
	return stats, nil
}
