package geom

import (
	"math"
	"testing"
)

func TestTryCircleFromThreePointsCollinear(t *testing.T) {
	p1 := Point{X: 0, Y: 0, Z: 0}
	p2 := Point{X: 1, Y: 0, Z: 0}
	p3 := Point{X: 2, Y: 0, Z: 0}

	if _, ok := TryCircleFromThreePoints(p1, p2, p3); ok {
		t.Fatal("expected collinear points to fail circle construction")
	}
}

func TestTryCircleFromThreePointsUnitCircle(t *testing.T) {
	p1 := Point{X: 1, Y: 0, Z: 0}
	p2 := Point{X: 0, Y: 1, Z: 0}
	p3 := Point{X: -1, Y: 0, Z: 0}

	c, ok := TryCircleFromThreePoints(p1, p2, p3)
	if !ok {
		t.Fatal("expected a circle")
	}
	if math.Abs(c.Center.X) > 1e-9 || math.Abs(c.Center.Y) > 1e-9 {
		t.Fatalf("expected center near origin, got %v", c.Center)
	}
	if math.Abs(c.Radius-1) > 1e-9 {
		t.Fatalf("expected radius 1, got %f", c.Radius)
	}
}

func TestCircleContains(t *testing.T) {
	c := Circle{Center: Point{}, Radius: 10}
	onCircle := Point{X: 10, Y: 0}
	if !c.Contains(onCircle, 0.01) {
		t.Fatal("expected point on circle to be contained")
	}

	offCircle := Point{X: 10.5, Y: 0}
	if c.Contains(offCircle, 0.01) {
		t.Fatal("expected point off circle by more than tolerance to be rejected")
	}
}

func TestTryCreateArcQuarterCircleCCW(t *testing.T) {
	c := Circle{Center: Point{}, Radius: 10}
	start := Point{X: 10, Y: 0}
	mid := c.ClosestPoint(Point{X: 10 * math.Cos(math.Pi/8), Y: 10 * math.Sin(math.Pi / 8)})
	end := Point{X: 0, Y: 10}

	length := c.Radius * (math.Pi / 2)
	a, ok := TryCreateArc(c, start, mid, end, length, 0.025)
	if !ok {
		t.Fatal("expected arc to be created")
	}
	if a.AngleRadians < 0 {
		t.Fatalf("expected positive (CCW) swept angle, got %f", a.AngleRadians)
	}
	if math.Abs(a.Length-length) > 0.025 {
		t.Fatalf("expected length near %f, got %f", length, a.Length)
	}
}

func TestTryCreateArcClockwise(t *testing.T) {
	c := Circle{Center: Point{}, Radius: 10}
	start := Point{X: 0, Y: 10}
	mid := c.ClosestPoint(Point{X: 10 * math.Cos(math.Pi/8), Y: 10 * math.Sin(math.Pi / 8)})
	end := Point{X: 10, Y: 0}

	length := c.Radius * (math.Pi / 2)
	a, ok := TryCreateArc(c, start, mid, end, length, 0.025)
	if !ok {
		t.Fatal("expected arc to be created")
	}
	if a.AngleRadians > 0 {
		t.Fatalf("expected negative (CW) swept angle, got %f", a.AngleRadians)
	}
}

func TestTryCreateArcRejectsLengthMismatch(t *testing.T) {
	c := Circle{Center: Point{}, Radius: 10}
	start := Point{X: 10, Y: 0}
	mid := Point{X: 10 * math.Cos(math.Pi/8), Y: 10 * math.Sin(math.Pi / 8)}
	end := Point{X: 0, Y: 10}

	if _, ok := TryCreateArc(c, start, mid, end, 1000, 0.025); ok {
		t.Fatal("expected length mismatch to reject the arc")
	}
}

func TestPerpendicularFootRejectsEndpoints(t *testing.T) {
	p1 := Point{X: 0, Y: 0}
	p2 := Point{X: 10, Y: 0}

	if _, ok := PerpendicularFoot(p1, p2, p1); ok {
		t.Fatal("expected foot at p1 to be rejected")
	}
	if _, ok := PerpendicularFoot(p1, p2, p2); ok {
		t.Fatal("expected foot at p2 to be rejected")
	}

	foot, ok := PerpendicularFoot(p1, p2, Point{X: 5, Y: 3})
	if !ok {
		t.Fatal("expected interior foot to be found")
	}
	if math.Abs(foot.X-5) > 1e-9 {
		t.Fatalf("expected foot.X == 5, got %f", foot.X)
	}
}

func TestDistanceFromSegmentClampsToEndpoints(t *testing.T) {
	s := Segment{P1: Point{X: 0, Y: 0}, P2: Point{X: 10, Y: 0}}

	d := DistanceFromSegment(s, Point{X: -5, Y: 0})
	if math.Abs(d-5) > 1e-9 {
		t.Fatalf("expected clamped distance of 5, got %f", d)
	}

	d = DistanceFromSegment(s, Point{X: 5, Y: 3})
	if math.Abs(d-3) > 1e-9 {
		t.Fatalf("expected perpendicular distance of 3, got %f", d)
	}
}
