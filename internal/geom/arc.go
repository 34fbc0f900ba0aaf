package geom

// Arc is a planar circular segment. The sign of AngleRadians encodes
// direction: negative is clockwise, positive is counter-clockwise.
// Length = |AngleRadians| * Radius.
type Arc struct {
	Circle
	StartPoint   Point
	EndPoint     Point
	Length       float64
	AngleRadians float64
}

// TryCreateArc resolves the swept angle (including direction) between start
// and end along circle c, passing through mid, and validates the result
// against approximateLength within resolution.
//
// The three chord angles between the snapped witness points must combine to
// a full turn in exactly one of four ways; whichever combination matches
// (within CircleTolerance) tells us which arcs of which chords to sum for
// the total swept angle.
func TryCreateArc(c Circle, start, mid, end Point, approximateLength, resolution float64) (Arc, bool) {
	p1 := c.ClosestPoint(start)
	p2 := c.ClosestPoint(mid)
	p3 := c.ClosestPoint(end)

	theta12 := c.RadiansBetween(p1, p2)
	theta23 := c.RadiansBetween(p2, p3)
	theta31 := c.RadiansBetween(p3, p1)

	var angle1, angle2 float64
	foundAngle := true

	switch {
	case isEqual(theta12+theta23+theta31, PiDouble, CircleTolerance):
		angle1, angle2 = theta12, theta23
	case isEqual(theta12+theta23+(PiDouble-theta31), PiDouble, CircleTolerance):
		angle1, angle2 = theta23, theta12
	case isEqual((PiDouble-theta12)+theta23+theta31, PiDouble, CircleTolerance):
		angle1, angle2 = PiDouble-theta12, theta23
	case isEqual(theta12+(PiDouble-theta23)+theta31, PiDouble, CircleTolerance):
		angle1, angle2 = theta12, PiDouble-theta23
	default:
		foundAngle = false
	}

	if !foundAngle {
		return Arc{}, false
	}

	angleRadians := angle1 + angle2
	length := angleRadians * c.Radius
	if !isEqual(length, approximateLength, resolution) {
		return Arc{}, false
	}

	// Very small angles can't be relied upon to calculate the sign of the
	// arc (clockwise vs counter-clockwise).
	if angleRadians < MinArcTheta {
		return Arc{}, false
	}

	// Raw comparison to zero, not a tolerance compare - sign discrimination
	// near zero is the decision being made here.
	v1 := p1.Sub(p2)
	v2 := p3.Sub(p2)
	if CrossMagnitudeXY(v1, v2) > 0.0 {
		angleRadians *= -1.0
	}

	return Arc{
		Circle:       Circle{Center: c.Center, Radius: c.Radius},
		StartPoint:   start,
		EndPoint:     end,
		Length:       length,
		AngleRadians: angleRadians,
	}, true
}

// Clockwise reports whether the arc sweeps clockwise (negative angle).
func (a Arc) Clockwise() bool {
	return a.AngleRadians < 0
}
