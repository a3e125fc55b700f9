package spline

// Table limits
const (
	minTablePoints    = 1 // Smallest table Value can evaluate
	minResamplePoints = 2 // Resample needs both ends of the range
)

// Catmull-Rom boundary segments
const (
	firstSegment      = 0 // No sample before the first segment to derive a tangent from
	lastSegmentOffset = 2 // Index N-2 starts the last segment
)

// Hermite basis coefficients in powers of t, ordered
// h00, h10, h01, h11. Each row is one power:
//
//	h(t) = a + b*t + c*t² + d*t³
var (
	hermiteCoeffA = [4]float64{1, 0, 0, 0}
	hermiteCoeffB = [4]float64{0, 1, 0, 0}
	hermiteCoeffC = [4]float64{-3, -2, 3, -1}
	hermiteCoeffD = [4]float64{2, 1, -2, 1}
)
