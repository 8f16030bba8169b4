// Package fractal provides the pure evaluation primitives of the Mandelbrot
// explorer.
//
// A frame is produced by composing three pure functions per pixel:
//
//   - [Viewport.Point]: pixel coordinate to complex-plane sample point
//   - [Escape]: escape-time iteration of z = z*z + c
//   - [Color]: iteration count to RGB under a [Scheme]
//
// [RenderTile] applies that composition to one rectangular work unit of a
// [PixelBuffer]. Tiles are disjoint, so any number of them may be rendered
// concurrently without synchronization.
//
// # Example
//
//	buf := fractal.NewPixelBuffer(640, 480)
//	vp := fractal.Fit(640, 480)
//	fractal.RenderTile(buf, buf.Bounds(), vp, fractal.Scheme(0))
//
// # Determinism
//
// All arithmetic is float64 with products rounded explicitly, so the same
// viewport yields bit-identical frames on every platform.
package fractal
