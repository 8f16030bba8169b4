// Package interact owns the explorer's viewport state and turns gestures
// from a display surface into frame requests.
//
//   - [Controller]: pan/zoom/resize state machine over a [fractal.Viewport]
//   - [Session]: coalesces frame requests and hands finished buffers to a
//     [Surface]
//
// # Thread Safety
//
// Controller methods may be called from any goroutine. A Session reads the
// viewport once per frame, so gestures arriving mid-frame apply to the next
// one.
package interact
