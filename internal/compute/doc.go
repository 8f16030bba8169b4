// Package compute dispatches fractal frames across parallel backends.
//
// The package automatically selects the best available backend:
//
//   - CUDA: escape counts on the GPU, 16x16 thread blocks
//   - CPU: tile worker pool sized to runtime.NumCPU
//
// # Dispatch
//
// A frame is split into 16x16 tiles, rendered in parallel, and returned only
// once every tile is complete:
//
//	backend := compute.AutoSelectBackend(compute.Options{})
//	buf, err := compute.Dispatch(ctx, backend, job)
//
// Build with CUDA support:
//
//	./build_cuda.sh
package compute
