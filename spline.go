package spline

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-spline/internal/simdops"
)

// Float is the type constraint for supported sample types.
type Float = simdops.Float

// Common errors returned when installing a table or switching degree.
var (
	// ErrEmptyTable indicates a table with no samples.
	ErrEmptyTable = errors.New("empty sample table")

	// ErrLengthMismatch indicates parallel slices of different lengths.
	ErrLengthMismatch = errors.New("sample table length mismatch")

	// ErrUnsorted indicates x values that are not non-decreasing.
	ErrUnsorted = errors.New("sample x values not sorted")

	// ErrMissingTangents indicates Hermite interpolation without a tangent table.
	ErrMissingTangents = errors.New("hermite interpolation requires tangents")

	// ErrInvalidDegree indicates a Degree outside the named set.
	ErrInvalidDegree = errors.New("invalid interpolation degree")

	// ErrInvalidCount indicates a resample point count that is too small.
	ErrInvalidCount = errors.New("invalid point count")
)

// Spline interpolates through a table of (x, y) samples.
//
// The table slices are borrowed, not copied: they must not be modified while
// the Spline is in use and must outlive it.
//
// A Spline caches the index of the last segment it located so that ascending
// query sequences cost O(1) per call. That cache makes a Spline unsafe for
// concurrent use; each goroutine must evaluate through its own Ref.
type Spline[F Float] struct {
	xs, ys, ms []F
	degree     Degree

	// cursor is the index of the segment matched by the last lookup.
	cursor int

	// scanned is the number of candidates the last lookup inspected.
	scanned int

	kernel  *hermiteKernel[F]
	scratch [4]F
}

// New returns an empty Spline using DefaultDegree. Value returns NaN until a
// table is installed.
func New[F Float]() *Spline[F] {
	return &Spline[F]{degree: DefaultDegree}
}

// NewFromPoints returns a Spline over xs and ys using the given degree.
// Hermite cannot be selected here because it needs tangents; use NewHermite.
func NewFromPoints[F Float](xs, ys []F, degree Degree) (*Spline[F], error) {
	sp := New[F]()
	if err := sp.SetDegree(degree); err != nil {
		return nil, err
	}
	if err := sp.SetPoints(xs, ys); err != nil {
		return nil, err
	}
	return sp, nil
}

// NewHermite returns a Hermite Spline over xs and ys with tangents ms.
func NewHermite[F Float](xs, ys, ms []F) (*Spline[F], error) {
	sp := New[F]()
	if err := sp.SetPointsWithTangents(xs, ys, ms); err != nil {
		return nil, err
	}
	return sp, nil
}

// SetPoints installs a new sample table, replacing the previous table and
// any tangents. xs must be sorted in non-decreasing order.
//
// SetPoints fails with ErrMissingTangents when the Spline is in Hermite mode;
// switch degree first or use SetPointsWithTangents.
func (sp *Spline[F]) SetPoints(xs, ys []F) error {
	if err := validateTable(xs, ys); err != nil {
		return err
	}
	if sp.degree == Hermite {
		return fmt.Errorf("%w: SetPoints called in hermite mode", ErrMissingTangents)
	}

	sp.xs, sp.ys, sp.ms = xs, ys, nil
	sp.cursor = 0
	return nil
}

// SetPointsWithTangents installs a new sample table with one tangent per
// sample and selects Hermite interpolation.
func (sp *Spline[F]) SetPointsWithTangents(xs, ys, ms []F) error {
	if err := validateTable(xs, ys); err != nil {
		return err
	}
	if len(ms) != len(xs) {
		return fmt.Errorf("%w: len(xs) = %d but len(ms) = %d",
			ErrLengthMismatch, len(xs), len(ms))
	}

	sp.xs, sp.ys, sp.ms = xs, ys, ms
	sp.degree = Hermite
	sp.cursor = 0
	return nil
}

// SetDegree switches the interpolation degree without touching the table.
func (sp *Spline[F]) SetDegree(d Degree) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDegree, int(d))
	}
	if d == Hermite && (sp.ms == nil || len(sp.ms) != len(sp.xs)) {
		return fmt.Errorf("%w: switching to hermite without a tangent table", ErrMissingTangents)
	}
	sp.degree = d
	return nil
}

// Degree returns the active interpolation degree.
func (sp *Spline[F]) Degree() Degree {
	return sp.degree
}

// Len returns the number of samples in the table.
func (sp *Spline[F]) Len() int {
	return len(sp.xs)
}

// Reset moves the search cursor back to the first segment.
func (sp *Spline[F]) Reset() {
	sp.cursor = 0
}

// Ref returns a shallow copy of the Spline with its own search cursor.
// The copy shares the borrowed table and may be used from another goroutine.
func (sp *Spline[F]) Ref() *Spline[F] {
	ref := *sp
	ref.cursor = 0
	return &ref
}

// Value returns the interpolated value at x.
//
// Queries below the first sample return the first y and queries above the
// last sample return the last y. A query equal to a sample's x returns that
// sample's y exactly. Value returns NaN for a NaN query and for a Spline with
// no table.
func (sp *Spline[F]) Value(x F) F {
	n := len(sp.xs)
	if n == 0 {
		return nan[F]()
	}

	if x < sp.xs[0] {
		return sp.ys[0]
	} else if x > sp.xs[n-1] {
		return sp.ys[n-1]
	}

	i, exact, ok := sp.locate(x)
	if !ok {
		return nan[F]()
	}
	if exact {
		return sp.ys[i]
	}
	return sp.calc(x, i)
}

// ValueAll evaluates the Spline at every element of xs. An optional output
// slice of the same length can be supplied to avoid allocating; ValueAll
// panics if it has any other length.
//
// Cubic segments are blended with the SIMD Hermite kernel, so results can
// differ from Value in the last few bits.
func (sp *Spline[F]) ValueAll(xs []F, out ...[]F) []F {
	var dst []F
	switch {
	case len(out) == 0:
		dst = make([]F, len(xs))
	case len(out[0]) != len(xs):
		panic(fmt.Sprintf("spline: ValueAll given %d queries but output of length %d",
			len(xs), len(out[0])))
	default:
		dst = out[0]
	}

	if sp.degree != Hermite && sp.degree != CatmullRom {
		for i, x := range xs {
			dst[i] = sp.Value(x)
		}
		return dst
	}

	if sp.kernel == nil {
		sp.kernel = kernelFor[F]()
	}
	n := len(sp.xs)
	for j, x := range xs {
		switch {
		case n == 0:
			dst[j] = nan[F]()
		case x < sp.xs[0]:
			dst[j] = sp.ys[0]
		case x > sp.xs[n-1]:
			dst[j] = sp.ys[n-1]
		default:
			i, exact, ok := sp.locate(x)
			switch {
			case !ok:
				dst[j] = nan[F]()
			case exact:
				dst[j] = sp.ys[i]
			default:
				dst[j] = sp.calcKernel(x, i)
			}
		}
	}
	return dst
}

// calc evaluates segment i at x for the active degree. The caller guarantees
// xs[i] < x < xs[i+1].
func (sp *Spline[F]) calc(x F, i int) F {
	xs, ys := sp.xs, sp.ys
	switch sp.degree {
	case Constant:
		return ys[i]
	case Linear:
		if xs[i] == xs[i+1] {
			return ys[i]
		}
		return ys[i] + (ys[i+1]-ys[i])*(x-xs[i])/(xs[i+1]-xs[i])
	case Hermite:
		t := (x - xs[i]) / (xs[i+1] - xs[i])
		return hermite(t, ys[i], ys[i+1], sp.ms[i], sp.ms[i+1], xs[i], xs[i+1])
	case CatmullRom:
		if v, ok := sp.catmullBoundary(i); ok {
			return v
		}
		t := (x - xs[i]) / (xs[i+1] - xs[i])
		m0, m1 := sp.catmullTangent(i), sp.catmullTangent(i+1)
		return hermite(t, ys[i], ys[i+1], m0, m1, xs[i], xs[i+1])
	default:
		// SetDegree rejects anything else.
		return nan[F]()
	}
}

// calcKernel is calc for the cubic degrees, blended with the SIMD kernel.
func (sp *Spline[F]) calcKernel(x F, i int) F {
	xs, ys := sp.xs, sp.ys
	var m0, m1 F
	if sp.degree == CatmullRom {
		if v, ok := sp.catmullBoundary(i); ok {
			return v
		}
		m0, m1 = sp.catmullTangent(i), sp.catmullTangent(i+1)
	} else {
		m0, m1 = sp.ms[i], sp.ms[i+1]
	}

	span := xs[i+1] - xs[i]
	t := (x - xs[i]) / span
	sp.scratch = [4]F{ys[i], span * m0, ys[i+1], span * m1}
	return sp.kernel.blend(sp.scratch[:], t)
}

// catmullBoundary returns the held value for the first and last segments,
// which lack an outer neighbour to derive a tangent from.
func (sp *Spline[F]) catmullBoundary(i int) (F, bool) {
	n := len(sp.xs)
	if i == firstSegment {
		return sp.ys[1], true
	} else if i == n-lastSegmentOffset {
		return sp.ys[n-lastSegmentOffset], true
	}
	return 0, false
}

// validateTable checks the invariants Value relies on.
func validateTable[F Float](xs, ys []F) error {
	if len(xs) < minTablePoints {
		return ErrEmptyTable
	}
	if len(xs) != len(ys) {
		return fmt.Errorf("%w: len(xs) = %d but len(ys) = %d",
			ErrLengthMismatch, len(xs), len(ys))
	}
	for i := 0; i < len(xs)-1; i++ {
		// Written negated so NaN fails too.
		if !(xs[i] <= xs[i+1]) {
			return fmt.Errorf("%w: xs[%d] = %g, xs[%d] = %g",
				ErrUnsorted, i, float64(xs[i]), i+1, float64(xs[i+1]))
		}
	}
	if len(xs) == 1 && math.IsNaN(float64(xs[0])) {
		return fmt.Errorf("%w: xs[0] is NaN", ErrUnsorted)
	}
	return nil
}

func nan[F Float]() F {
	return F(math.NaN())
}
