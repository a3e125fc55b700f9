package spline

import (
	"fmt"
	"strings"
)

// Degree selects the interpolation algorithm used between two samples.
type Degree int

const (
	// Constant holds the value of the left sample across each segment,
	// producing a step function.
	Constant Degree = iota

	// Linear joins neighbouring samples with straight lines.
	// This is the default degree.
	Linear

	// Hermite evaluates a cubic Hermite segment using caller-supplied
	// tangents, one per sample.
	Hermite

	// CatmullRom evaluates a cubic Hermite segment whose tangents are
	// derived from neighbouring samples. The first and last segments have
	// no outer neighbour and hold the nearest interior sample instead.
	CatmullRom
)

// DefaultDegree is the degree used by New.
const DefaultDegree = Linear

// String returns the lower-case name of the degree.
func (d Degree) String() string {
	switch d {
	case Constant:
		return "constant"
	case Linear:
		return "linear"
	case Hermite:
		return "hermite"
	case CatmullRom:
		return "catmull"
	default:
		return fmt.Sprintf("Degree(%d)", int(d))
	}
}

// Valid reports whether d is one of the named degrees.
func (d Degree) Valid() bool {
	return d >= Constant && d <= CatmullRom
}

// ParseDegree maps a degree name to its Degree. Matching is
// case-insensitive and accepts a few common aliases.
func ParseDegree(s string) (Degree, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "constant", "step", "0":
		return Constant, nil
	case "linear", "1":
		return Linear, nil
	case "hermite", "cubic":
		return Hermite, nil
	case "catmull", "catmull-rom", "catmullrom":
		return CatmullRom, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDegree, s)
	}
}
