package geom

import "math"

// Circle is a planar (XY) circle; its center's Z is carried from the points
// that defined it.
type Circle struct {
	Center Point
	Radius float64
}

// TryCircleFromThreePoints constructs the circle through p1, p2 and p3 in
// the XY plane. It fails when the three points are (near-)collinear, which
// is detected by the vanishing of the determinant a below.
func TryCircleFromThreePoints(p1, p2, p3 Point) (Circle, bool) {
	x1, y1 := p1.X, p1.Y
	x2, y2 := p2.X, p2.Y
	x3, y3 := p3.X, p3.Y

	a := x1*(y2-y3) - y1*(x2-x3) + x2*y3 - x3*y2
	if isZero(a, CircleTolerance) {
		return Circle{}, false
	}

	b := (x1*x1+y1*y1)*(y3-y2) +
		(x2*x2+y2*y2)*(y1-y3) +
		(x3*x3+y3*y3)*(y2-y1)

	c := (x1*x1+y1*y1)*(x2-x3) +
		(x2*x2+y2*y2)*(x3-x1) +
		(x3*x3+y3*y3)*(x1-x2)

	cx := -b / (2.0 * a)
	cy := -c / (2.0 * a)

	return Circle{
		Center: Point{X: cx, Y: cy, Z: p1.Z},
		Radius: CartesianDistance2D(cx, cy, x1, y1),
	}, true
}

// Contains reports whether p lies on the circle within tol.
func (c Circle) Contains(p Point, tol float64) bool {
	diff := math.Abs(CartesianDistance2D(p.X, p.Y, c.Center.X, c.Center.Y) - c.Radius)
	return lessThan(diff, tol, CircleTolerance)
}

// RadiansBetween returns the short (non-reflex) angle in [0, pi] between p1
// and p2 as seen from the circle's center, via the law of cosines. Callers
// are responsible for disambiguating reflex angles.
func (c Circle) RadiansBetween(p1, p2 Point) float64 {
	distanceSq := math.Pow(CartesianDistance2D(p1.X, p1.Y, p2.X, p2.Y), 2.0)
	twoRSq := 2.0 * c.Radius * c.Radius
	return math.Acos((twoRSq - distanceSq) / twoRSq)
}

// ClosestPoint projects p radially onto the circle, preserving a
// proportional Z offset from the center along the outward direction. Used
// to snap witness points back onto the circle before angle arithmetic.
func (c Circle) ClosestPoint(p Point) Point {
	v := p.Sub(c.Center)
	mag := v.Magnitude()
	return Point{
		X: c.Center.X + v.X/mag*c.Radius,
		Y: c.Center.Y + v.Y/mag*c.Radius,
		Z: c.Center.Z + v.Z/mag*c.Radius,
	}
}
