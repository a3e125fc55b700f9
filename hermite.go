package spline

import "github.com/tphakala/go-spline/internal/simdops"

// Cubic Hermite basis functions over t in [0, 1]. Powers are formed by
// multiplication in F so float32 tables are evaluated in float32 throughout.

// hermite00 weights the start value.
func hermite00[F Float](t F) F {
	t2 := t * t
	return 2*t2*t - 3*t2 + 1
}

// hermite10 weights the start tangent.
func hermite10[F Float](t F) F {
	t2 := t * t
	return t2*t - 2*t2 + t
}

// hermite01 weights the end value.
func hermite01[F Float](t F) F {
	t2 := t * t
	return 3*t2 - 2*t2*t
}

// hermite11 weights the end tangent.
func hermite11[F Float](t F) F {
	t2 := t * t
	return t2*t - t2
}

// hermite blends endpoint values p0, p1 and tangents m0, m1 of the segment
// [x0, x1] at normalized position t. Tangents are per unit x, so they are
// scaled by the segment width.
func hermite[F Float](t, p0, p1, m0, m1, x0, x1 F) F {
	span := x1 - x0
	return hermite00(t)*p0 + hermite10(t)*span*m0 + hermite01(t)*p1 + hermite11(t)*span*m1
}

// hermiteKernel holds the basis coefficient table in F for the SIMD fused
// cubic dot product.
type hermiteKernel[F Float] struct {
	a, b, c, d []F
	ops        *simdops.Ops[F]
}

var (
	kernel32 = newHermiteKernel[float32]()
	kernel64 = newHermiteKernel[float64]()
)

func newHermiteKernel[F Float]() *hermiteKernel[F] {
	k := &hermiteKernel[F]{
		a:   make([]F, len(hermiteCoeffA)),
		b:   make([]F, len(hermiteCoeffB)),
		c:   make([]F, len(hermiteCoeffC)),
		d:   make([]F, len(hermiteCoeffD)),
		ops: simdops.For[F](),
	}
	for i := range hermiteCoeffA {
		k.a[i] = F(hermiteCoeffA[i])
		k.b[i] = F(hermiteCoeffB[i])
		k.c[i] = F(hermiteCoeffC[i])
		k.d[i] = F(hermiteCoeffD[i])
	}
	return k
}

// kernelFor returns the shared kernel for F.
func kernelFor[F Float]() *hermiteKernel[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		k, ok := any(kernel32).(*hermiteKernel[F])
		if !ok {
			panic("spline: kernel type assertion failed for float32")
		}
		return k
	case float64:
		k, ok := any(kernel64).(*hermiteKernel[F])
		if !ok {
			panic("spline: kernel type assertion failed for float64")
		}
		return k
	default:
		panic("spline: unsupported float type")
	}
}

// blend evaluates h00*v[0] + h10*v[1] + h01*v[2] + h11*v[3] at t, where v
// holds {p0, span*m0, p1, span*m1}.
func (k *hermiteKernel[F]) blend(v []F, t F) F {
	return k.ops.CubicInterpDot(v, k.a, k.b, k.c, k.d, t)
}
