// Package arcfit implements the sliding-window accumulator that decides,
// point by point, whether a growing sequence of consecutive move endpoints
// still admits a circular arc approximating the path within a configured
// tolerance. It is the geometric core of arcweld: single-threaded,
// synchronous, with no I/O and no logging - every failure is a plain false
// return, never an error.
package arcfit

import (
	"fmt"
	"strings"

	"github.com/joushou/arcweld/internal/geom"
)

// Config configures a SegmentedArc at construction.
type Config struct {
	// MinSegments is the minimum number of endpoints an emittable arc must
	// span. Must be >= 3 (a circle needs three points to exist).
	MinSegments int
	// MaxSegments is the maximum number of endpoints a single arc may span.
	// Zero means "use the default of 50".
	MaxSegments int
	// ResolutionMM is the user-facing maximum deviation, in millimeters,
	// between the original linear path and the fitted arc. Zero means "use
	// the default of 0.05". This is always the unhalved, public-facing
	// value - see the internal resolutionMM field for the ±1/2 tolerance
	// actually used in fit tests.
	ResolutionMM float64
}

const (
	defaultMinSegments = 3
	defaultMaxSegments = 50
	defaultResolution  = 0.05
)

// SegmentedArc is the streaming accumulator described above: it owns a
// bounded window of recent endpoints and the running sums and candidate
// circle needed to decide, on each new point, whether the window is still a
// valid growing arc candidate.
type SegmentedArc struct {
	window *pointWindow

	eRelativeSum       float64
	originalPathLength float64
	isShapeFlag        bool

	minSegments int
	maxSegments int

	publicResolutionMM float64 // unhalved, as configured
	resolutionMM       float64 // halved: tolerance is +/- 1/2 of the requested resolution

	arcCircle geom.Circle
	hasCircle bool // whether arcCircle has ever been successfully fit

	gcodeBuf strings.Builder
}

// New constructs an empty SegmentedArc. Zero-valued Config fields fall back
// to the package defaults (min 3, max 50, resolution 0.05mm).
func New(cfg Config) *SegmentedArc {
	minSegments := cfg.MinSegments
	if minSegments == 0 {
		minSegments = defaultMinSegments
	}
	maxSegments := cfg.MaxSegments
	if maxSegments == 0 {
		maxSegments = defaultMaxSegments
	}
	resolution := cfg.ResolutionMM
	if resolution == 0 {
		resolution = defaultResolution
	}

	return &SegmentedArc{
		window:              newPointWindow(maxSegments),
		minSegments:         minSegments,
		maxSegments:         maxSegments,
		publicResolutionMM:  resolution,
		resolutionMM:        resolution / 2.0,
	}
}

// MinSegments returns the configured minimum window size.
func (s *SegmentedArc) MinSegments() int { return s.minSegments }

// MaxSegments returns the configured maximum window size.
func (s *SegmentedArc) MaxSegments() int { return s.maxSegments }

// ResolutionMM returns the configured, unhalved fit tolerance - the public
// API always advertises the unhalved value, never the internally halved
// one used for comparisons.
func (s *SegmentedArc) ResolutionMM() float64 { return s.publicResolutionMM }

// NumSegments returns the current window size.
func (s *SegmentedArc) NumSegments() int { return s.window.Count() }

// Front returns the front-most point in the window without removing it.
// Panics if the window is empty.
func (s *SegmentedArc) Front() geom.Point { return s.window.At(0) }

// Back returns the back-most point in the window without removing it.
// Panics if the window is empty.
func (s *SegmentedArc) Back() geom.Point { return s.window.At(s.window.Count() - 1) }

// ShapeLength returns the accumulated straight-line length of the window.
func (s *SegmentedArc) ShapeLength() float64 { return s.originalPathLength }

// ShapeERelative returns the accumulated extrusion delta of the window.
func (s *SegmentedArc) ShapeERelative() float64 { return s.eRelativeSum }

// IsShape reports whether the window currently represents a committed,
// emittable arc: at least MinSegments points, all verifying against the
// candidate circle.
func (s *SegmentedArc) IsShape() bool {
	if !s.isShapeFlag {
		return false
	}
	_, ok := s.buildArc()
	return ok
}

// Clear discards all points and resets every running total.
func (s *SegmentedArc) Clear() {
	s.window.Clear()
	s.isShapeFlag = false
	s.eRelativeSum = 0
	s.originalPathLength = 0
	s.hasCircle = false
}

// PopFront removes the front-most point from the window. eRelativeAdjustment
// is subtracted from the running extrusion sum - callers typically pass the
// removed point's own ERelative.
func (s *SegmentedArc) PopFront(eRelativeAdjustment float64) geom.Point {
	if s.window.Count() == s.minSegments {
		s.isShapeFlag = false
	}
	s.eRelativeSum -= eRelativeAdjustment
	return s.window.PopFront()
}

// PopBack removes the back-most point from the window.
func (s *SegmentedArc) PopBack(eRelativeAdjustment float64) geom.Point {
	if s.window.Count() == s.minSegments {
		s.isShapeFlag = false
	}
	s.eRelativeSum -= eRelativeAdjustment
	return s.window.PopBack()
}

// TryAddPoint attempts to extend the window by one endpoint p, whose delta
// extrusion is eRelative. It returns whether the window accepted the point
// and is still a valid (growing or committed) candidate arc.
func (s *SegmentedArc) TryAddPoint(p geom.Point, eRelative float64) bool {
	n := s.window.Count()
	if n >= s.maxSegments {
		return false
	}

	var d float64
	if n > 0 {
		last := s.window.At(n - 1)
		if !geom.IsEqual(last.Z, p.Z, geom.CircleTolerance) {
			// Arcs are planar: every point in the window must share the same
			// Z. A helical/spiral-vase move must never be coalesced into a
			// G2/G3 record, which has no way to carry a changing Z.
			return false
		}
		d = geom.CartesianDistance2D(last.X, last.Y, p.X, p.Y)
	}

	switch {
	case n < 2:
		s.acceptPoint(p, d, eRelative, n > 0)
		return true

	case n == 2:
		c, ok := geom.TryCircleFromThreePoints(s.window.At(0), s.window.At(1), p)
		if !ok {
			// Collinear buildup is not yet a failure - the arc may still
			// form once a non-collinear point arrives.
			s.acceptPoint(p, d, eRelative, true)
			return true
		}
		s.arcCircle = c
		s.hasCircle = true
		s.acceptPoint(p, d, eRelative, true)
		s.isShapeFlag = s.window.Count() >= s.minSegments
		return true

	default: // n >= 3
		if n == s.maxSegments {
			return false
		}

		if !s.hasCircle {
			// Still in collinear buildup: try to bootstrap a circle from the
			// two most recent points plus the candidate, and accept only if
			// it also fits every point already in the window. If no circle
			// fits yet, keep accepting unconditionally in hopes of a later
			// non-collinear point, exactly the buildup policy above.
			if c, ok := geom.TryCircleFromThreePoints(s.window.At(n-2), s.window.At(n-1), p); ok && s.fitsCircle(c, p, d) {
				s.arcCircle = c
				s.hasCircle = true
				s.acceptPoint(p, d, eRelative, true)
				s.isShapeFlag = s.window.Count() >= s.minSegments
				return true
			}
			s.acceptPoint(p, d, eRelative, true)
			return true
		}

		if !s.fitsCircle(s.arcCircle, p, d) {
			return false
		}
		s.acceptPoint(p, d, eRelative, true)
		s.isShapeFlag = true
		return true
	}
}

func (s *SegmentedArc) acceptPoint(p geom.Point, d, eRelative float64, countExtrusion bool) {
	s.window.PushBack(p)
	s.originalPathLength += d
	if countExtrusion {
		s.eRelativeSum += eRelative
	}
}

// fitsCircle verifies that candidate point p, and every point already in the
// window - plus every interior perpendicular foot between consecutive window
// points and between the last point and p - lies on c within resolution, and
// that the resulting arc's length still matches the accumulated path length
// within resolution.
func (s *SegmentedArc) fitsCircle(c geom.Circle, p geom.Point, d float64) bool {
	n := s.window.Count()

	if !c.Contains(p, s.resolutionMM) {
		return false
	}

	for i := 0; i < n; i++ {
		if !c.Contains(s.window.At(i), s.resolutionMM) {
			return false
		}
	}

	for i := 0; i < n-1; i++ {
		if foot, ok := geom.PerpendicularFoot(s.window.At(i), s.window.At(i+1), c.Center); ok {
			if !c.Contains(foot, s.resolutionMM) {
				return false
			}
		}
	}

	if n > 0 {
		if foot, ok := geom.PerpendicularFoot(s.window.At(n-1), p, c.Center); ok {
			if !c.Contains(foot, s.resolutionMM) {
				return false
			}
		}
	}

	_, ok := geom.TryCreateArc(c, s.window.At(0), s.window.At(s.midIndex()), p,
		s.originalPathLength+d, s.resolutionMM)
	return ok
}

func (s *SegmentedArc) midIndex() int {
	n := s.window.Count()
	return (n-2)/2 + 1
}

func (s *SegmentedArc) buildArc() (geom.Arc, bool) {
	n := s.window.Count()
	if n == 0 {
		return geom.Arc{}, false
	}
	return geom.TryCreateArc(s.arcCircle, s.window.At(0), s.window.At(s.midIndex()), s.window.At(n-1),
		s.originalPathLength, s.resolutionMM)
}

// TryGetArc materializes the current window into an Arc record. It fails
// without mutating state when the window is not currently a shape.
func (s *SegmentedArc) TryGetArc() (geom.Arc, bool) {
	if !s.IsShape() {
		return geom.Arc{}, false
	}
	return s.buildArc()
}

// GetShapeGCodeAbsolute formats the current shape as a G2/G3 command
// carrying the cumulative extrusion position finalEAbsolute and an optional
// feedrate (0 to omit F).
func (s *SegmentedArc) GetShapeGCodeAbsolute(finalEAbsolute, feedrate float64) (string, bool) {
	hasE := s.eRelativeSum != 0
	return s.shapeGCode(hasE, finalEAbsolute, feedrate)
}

// GetShapeGCodeRelative formats the current shape as a G2/G3 command
// carrying the window's own extrusion delta.
func (s *SegmentedArc) GetShapeGCodeRelative(feedrate float64) (string, bool) {
	hasE := s.eRelativeSum != 0
	return s.shapeGCode(hasE, s.eRelativeSum, feedrate)
}

func (s *SegmentedArc) shapeGCode(hasE bool, e, feedrate float64) (string, bool) {
	a, ok := s.TryGetArc()
	if !ok {
		return "", false
	}

	i := a.Center.X - a.StartPoint.X
	j := a.Center.Y - a.StartPoint.Y

	cmd := "G3"
	if a.Clockwise() {
		cmd = "G2"
	}

	s.gcodeBuf.Reset()
	fmt.Fprintf(&s.gcodeBuf, "%s X%.5f Y%.5f I%.5f J%.5f", cmd, a.EndPoint.X, a.EndPoint.Y, i, j)
	if hasE {
		fmt.Fprintf(&s.gcodeBuf, " E%.5f", e)
	}
	if feedrate != 0 {
		fmt.Fprintf(&s.gcodeBuf, " F%.0f", feedrate)
	}
	return s.gcodeBuf.String(), true
}
