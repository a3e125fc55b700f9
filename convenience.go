package spline

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Interpolate evaluates the table (xs, ys) at every query using the given
// degree. Hermite derives its tangents with DeriveTangents.
//
// This is a one-shot helper; for repeated evaluation over the same table,
// build a Spline once and reuse it.
func Interpolate(xs, ys, queries []float64, degree Degree) ([]float64, error) {
	return interpolate(xs, ys, queries, degree)
}

// InterpolateFloat32 is like Interpolate but for float32 tables.
func InterpolateFloat32(xs, ys, queries []float32, degree Degree) ([]float32, error) {
	return interpolate(xs, ys, queries, degree)
}

func interpolate[F Float](xs, ys, queries []F, degree Degree) ([]F, error) {
	sp, err := newForDegree(xs, ys, degree)
	if err != nil {
		return nil, err
	}
	return sp.ValueAll(queries), nil
}

// Resample evaluates the table on n evenly spaced points spanning
// [xs[0], xs[len(xs)-1]] and returns the grid together with the values.
func Resample(xs, ys []float64, n int, degree Degree) (grid, values []float64, err error) {
	if n < minResamplePoints {
		return nil, nil, fmt.Errorf("%w: need at least %d points, got %d",
			ErrInvalidCount, minResamplePoints, n)
	}

	sp, err := newForDegree(xs, ys, degree)
	if err != nil {
		return nil, nil, err
	}

	grid = floats.Span(make([]float64, n), xs[0], xs[len(xs)-1])
	return grid, sp.ValueAll(grid), nil
}

// NewHermiteFromSamples returns a Hermite Spline whose tangents are derived
// from the samples. The tangent slice is returned because the Spline
// borrows it.
func NewHermiteFromSamples[F Float](xs, ys []F) (*Spline[F], []F, error) {
	ms, err := DeriveTangents(xs, ys)
	if err != nil {
		return nil, nil, err
	}
	sp, err := NewHermite(xs, ys, ms)
	if err != nil {
		return nil, nil, err
	}
	return sp, ms, nil
}

func newForDegree[F Float](xs, ys []F, degree Degree) (*Spline[F], error) {
	if degree == Hermite {
		sp, _, err := NewHermiteFromSamples(xs, ys)
		return sp, err
	}
	return NewFromPoints(xs, ys, degree)
}
