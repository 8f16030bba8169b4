// Package analysis provides frame statistics for the explorer.
//
//   - [ComputeEscapeStats]: escape-count histogram of a whole canvas
//   - [EscapeStats.Bins]: histogram folded into plot-sized buckets
//
// # Example
//
//	stats, _ := analysis.ComputeEscapeStats(320, 240, vp)
//	fmt.Printf("%.1f%% in set\n", 100*stats.InSetFraction())
package analysis
