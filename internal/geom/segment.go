package geom

// Segment is an ordered pair of points, used only for perpendicular-foot and
// point-to-segment-distance computations in the XY plane.
type Segment struct {
	P1, P2 Point
}

// DistanceFromSegment projects p onto the segment and returns the distance
// to that projection, clamping to the nearest endpoint when the projection
// parameter falls outside [0,1].
func DistanceFromSegment(s Segment, p Point) float64 {
	v := s.P2.Sub(s.P1)
	w := p.Sub(s.P1)

	c1 := w.X*v.X + w.Y*v.Y + w.Z*v.Z
	if c1 <= 0 {
		return p.Sub(s.P1).Magnitude()
	}

	c2 := v.X*v.X + v.Y*v.Y + v.Z*v.Z
	if c2 <= c1 {
		return p.Sub(s.P2).Magnitude()
	}

	b := c1 / c2
	pb := s.P1.Add(v.Scale(b))
	return p.Sub(pb).Magnitude()
}

// PerpendicularFoot returns the XY foot of the perpendicular dropped from c
// onto the infinite line through p1,p2, but only when the projection
// parameter t strictly satisfies 0 < t < 1 (within CircleTolerance). A hit
// exactly at an endpoint means c lies outside the segment's interior, which
// is not informative for mid-window fit checks, so it reports no foot.
func PerpendicularFoot(p1, p2, c Point) (Point, bool) {
	num := (c.X-p1.X)*(p2.X-p1.X) + (c.Y-p1.Y)*(p2.Y-p1.Y)
	denom := (p2.X-p1.X)*(p2.X-p1.X) + (p2.Y-p1.Y)*(p2.Y-p1.Y)
	t := num / denom

	// t == 0 or t == 1 within tolerance means we hit the endpoint, which is
	// not an interior perpendicular hit.
	if !(t > CircleTolerance) || !(t < 1-CircleTolerance) {
		return Point{}, false
	}

	return Point{
		X: p1.X + t*(p2.X-p1.X),
		Y: p1.Y + t*(p2.Y-p1.Y),
	}, true
}
