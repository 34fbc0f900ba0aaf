package geom

import "math"

// CircleTolerance is the epsilon used for structural circle-geometry
// comparisons (degeneracy, near-collinearity). It is deliberately tiny and
// distinct from the much larger, user-facing resolution used for arc fit
// acceptance - conflating the two is a likely bug source.
const CircleTolerance = 1e-10

// MinArcTheta is the smallest swept angle, in radians, for which the sign
// of the angle (clockwise vs counter-clockwise) can be trusted.
const MinArcTheta = 0.001

// PiDouble is tau, named to match the domain's own naming rather than
// reaching for math.Pi*2 at every call site.
const PiDouble = 2 * math.Pi

func isZero(v, tol float64) bool {
	return math.Abs(v) < tol
}

func isEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// IsEqual reports whether a and b differ by less than tol. Exported for
// callers outside this package that need the same structural-tolerance
// comparison - arcfit's window Z-consistency check, notably.
func IsEqual(a, b, tol float64) bool {
	return isEqual(a, b, tol)
}

func lessThan(a, b, tol float64) bool {
	return a < b-tol
}
