// Package viz is the terminal display surface of the explorer.
//
// Frames are drawn with the upper half block so each terminal cell shows two
// vertically stacked pixels:
//
//   - [HalfBlocks]: pixel buffer to styled terminal text
//   - [Surface]: [interact.Surface] backed by a bubbletea program
//   - [RunExplorer]: full-screen pan/zoom explorer with mouse support
//
// # Example
//
//	err := viz.RunExplorer(viz.ExplorerOptions{
//	    Backend: compute.AutoSelectBackend(compute.Options{}),
//	})
package viz
