// Package spline provides one-dimensional interpolation through a table of
// samples.
//
// A [Spline] borrows sorted x values, their y values and optionally one
// tangent per sample, and evaluates the interpolated value at any query x.
// It interpolates exactly through the samples; it does not fit curves.
//
// # Degrees
//
//   - [Constant]: step function holding the left sample.
//   - [Linear]: straight lines between samples. The default.
//   - [Hermite]: cubic Hermite segments using caller-supplied tangents.
//   - [CatmullRom]: cubic Hermite segments with tangents derived from
//     neighbouring samples. The first and last segments hold the nearest
//     interior sample.
//
// Queries outside the table return the nearest end sample, and a query equal
// to a sample's x returns that sample's y exactly.
//
// # Quick Start
//
//	xs := []float64{0, 1, 2, 3}
//	ys := []float64{0, 1, 4, 9}
//	sp, err := spline.NewFromPoints(xs, ys, spline.Linear)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v := sp.Value(1.5) // 2.5
//
// For explicit tangents use [NewHermite], or [NewHermiteFromSamples] to
// derive them by finite differences.
//
// # Performance
//
// Segment lookup scans from the segment matched by the previous call, so
// evaluating queries in ascending order costs O(1) per call. Random access
// costs O(N) in the worst case. [Spline.ValueAll] evaluates a batch of
// queries and blends cubic segments with a SIMD kernel from
// github.com/tphakala/simd.
//
// # Concurrency
//
// Value updates the cached segment index, so a Spline must not be shared
// between goroutines. Give each goroutine its own copy with [Spline.Ref];
// copies share the borrowed table.
//
// # Precision
//
// Both float32 and float64 tables are supported through the same generic
// code. float32 evaluation stays in float32.
package spline
