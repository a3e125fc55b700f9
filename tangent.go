package spline

import "fmt"

// catmullTangent derives the slope at interior sample i from its two
// neighbours. A zero-width neighbour span yields a flat tangent.
func (sp *Spline[F]) catmullTangent(i int) F {
	xs, ys := sp.xs, sp.ys
	if xs[i+1] == xs[i-1] {
		return 0
	}
	return (ys[i+1] - ys[i-1]) / (xs[i+1] - xs[i-1])
}

// DeriveTangents estimates a tangent at every sample by finite differences,
// for use with NewHermite or SetPointsWithTangents. Interior samples use the
// centered difference, the two end samples use the one-sided difference to
// their only neighbour. Zero-width spans give a zero tangent.
//
// An optional output slice of len(xs) can be supplied to avoid allocating.
// Like ValueAll, DeriveTangents panics if it has the wrong length.
func DeriveTangents[F Float](xs, ys []F, out ...[]F) ([]F, error) {
	if err := validateTable(xs, ys); err != nil {
		return nil, err
	}

	n := len(xs)
	var ms []F
	if len(out) == 0 {
		ms = make([]F, n)
	} else if len(out[0]) != n {
		panic(fmt.Sprintf("spline: DeriveTangents given %d samples but output of length %d",
			n, len(out[0])))
	} else {
		ms = out[0]
	}

	if n == 1 {
		ms[0] = 0
		return ms, nil
	}

	ms[0] = slope(xs[0], xs[1], ys[0], ys[1])
	for i := 1; i < n-1; i++ {
		ms[i] = slope(xs[i-1], xs[i+1], ys[i-1], ys[i+1])
	}
	ms[n-1] = slope(xs[n-2], xs[n-1], ys[n-2], ys[n-1])
	return ms, nil
}

func slope[F Float](x0, x1, y0, y1 F) F {
	if x1 == x0 {
		return 0
	}
	return (y1 - y0) / (x1 - x0)
}
