package weld

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/joushou/arcweld/internal/gcodeio"
	"github.com/joushou/arcweld/internal/position"
)

// program builds a newline-joined G1 program from sampled (x, y) pairs, each
// carrying a relative extrusion delta of 1.0.
func program(t *testing.T, xs, ys []float64) *gcodeio.Document {
	t.Helper()
	var b strings.Builder
	for i := range xs {
		fmt.Fprintf(&b, "G1 X%.6f Y%.6f E1.0\n", xs[i], ys[i])
	}
	doc, err := gcodeio.ParseString(b.String())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return doc
}

func sample(radius, angle, cx, cy float64) (float64, float64) {
	return cx + radius*math.Cos(angle), cy + radius*math.Sin(angle)
}

func relativeTracker() position.Config {
	return position.Config{AbsoluteXYZ: true, AbsoluteE: false}
}

// Scenario 1: perfect quarter circle, CCW.
func TestRunQuarterCircleCCWEmitsArc(t *testing.T) {
	var xs, ys []float64
	for i := 0; i < 8; i++ {
		x, y := sample(10, float64(i)*math.Pi/16, 0, 0)
		xs = append(xs, x)
		ys = append(ys, y)
	}
	doc := program(t, xs, ys)

	results := Run(doc, relativeTracker(), Config{ResolutionMM: 0.1})

	if len(results) != 1 || results[0].Kind != KindArc {
		t.Fatalf("expected a single arc result, got %+v", results)
	}
	arc := results[0].Arc
	if arc.Clockwise() {
		t.Fatal("expected counter-clockwise arc")
	}
	wantLen := 10 * (7 * math.Pi / 16)
	if math.Abs(arc.Length-wantLen) > 0.1 {
		t.Fatalf("expected arc length ~%f, got %f", wantLen, arc.Length)
	}
	if math.Abs(results[0].ERelative-7.0) > 1e-9 {
		t.Fatalf("expected e_relative sum of 7.0 (7 deltas over 8 points), got %f", results[0].ERelative)
	}
}

// Scenario 2: collinear points stay linear passthrough.
func TestRunCollinearPointsFlushAsLinear(t *testing.T) {
	doc := program(t, []float64{0, 1, 2, 3}, []float64{0, 0, 0, 0})

	results := Run(doc, relativeTracker(), Config{})

	if len(results) != 4 {
		t.Fatalf("expected 4 passthrough linear moves, got %d: %+v", len(results), results)
	}
	for _, r := range results {
		if r.Kind != KindLinear {
			t.Fatalf("expected all results to be linear, got %+v", r)
		}
	}
}

// Scenario 3: an off-circle interloper after a valid 5-point arc forces the
// arc to be emitted, and welding continues from the rejected point.
func TestRunOffCircleInterloperEmitsPriorArc(t *testing.T) {
	var xs, ys []float64
	// pi/40 spacing keeps each chord's midpoint within the halved 0.0125mm
	// tolerance of the circle, so the first five points form a valid arc.
	for i := 0; i < 5; i++ {
		x, y := sample(10, float64(i)*math.Pi/40, 0, 0)
		xs = append(xs, x)
		ys = append(ys, y)
	}
	// 6th point, 0.1mm off the circle.
	ox, oy := sample(10.1, 5*math.Pi/40, 0, 0)
	xs = append(xs, ox)
	ys = append(ys, oy)

	doc := program(t, xs, ys)

	results := Run(doc, relativeTracker(), Config{ResolutionMM: 0.025})

	if len(results) == 0 || results[0].Kind != KindArc {
		t.Fatalf("expected the first result to be the finalized prior arc, got %+v", results)
	}
	if math.Abs(results[0].ERelative-4.0) > 1e-9 {
		t.Fatalf("expected the emitted arc to carry 4 accumulated extrusion deltas, got %f", results[0].ERelative)
	}
}

// Scenario 4: clockwise half circle.
func TestRunClockwiseHalfCircleEmitsArc(t *testing.T) {
	var xs, ys []float64
	for i := 0; i < 8; i++ {
		angle := math.Pi - float64(i)*math.Pi/8
		x, y := sample(5, angle, 5, 0)
		xs = append(xs, x)
		ys = append(ys, y)
	}
	doc := program(t, xs, ys)

	results := Run(doc, relativeTracker(), Config{ResolutionMM: 0.3})

	if len(results) != 1 || results[0].Kind != KindArc {
		t.Fatalf("expected a single arc result, got %+v", results)
	}
	arc := results[0].Arc
	if !arc.Clockwise() {
		t.Fatal("expected a clockwise arc")
	}
	if math.Abs(arc.AngleRadians+math.Pi) > 0.05 {
		t.Fatalf("expected swept angle ~ -pi, got %f", arc.AngleRadians)
	}
	wantLen := 5 * math.Pi
	if math.Abs(arc.Length-wantLen) > 0.1 {
		t.Fatalf("expected arc length ~%f, got %f", wantLen, arc.Length)
	}
	i := arc.Center.X - arc.StartPoint.X
	if math.Abs(i+5) > 0.1 {
		t.Fatalf("expected I ~ -5, got %f", i)
	}
}

// Scenario 5: under min_segments never becomes a shape.
func TestRunUnderMinSegmentsStaysLinear(t *testing.T) {
	doc := program(t, []float64{0, 1}, []float64{0, 1})

	results := Run(doc, relativeTracker(), Config{})

	for _, r := range results {
		if r.Kind != KindLinear {
			t.Fatalf("expected only passthrough linear moves, got %+v", r)
		}
	}
}

// Scenario 6: capacity exhaustion emits a max_segments-sized arc, then
// continues welding from the point that didn't fit.
func TestRunCapacityExhaustionEmitsFullWindow(t *testing.T) {
	var xs, ys []float64
	for i := 0; i < 11; i++ {
		x, y := sample(10, float64(i)*math.Pi/40, 0, 0)
		xs = append(xs, x)
		ys = append(ys, y)
	}
	doc := program(t, xs, ys)

	results := Run(doc, relativeTracker(), Config{MaxSegments: 10, ResolutionMM: 0.1})

	if len(results) < 1 || results[0].Kind != KindArc {
		t.Fatalf("expected the first result to be the 10-point arc, got %+v", results)
	}
	if math.Abs(results[0].ERelative-9.0) > 1e-9 {
		t.Fatalf("expected 9 accumulated extrusion deltas (10 points, first has none), got %f", results[0].ERelative)
	}
	last := results[len(results)-1]
	if last.Kind != KindLinear {
		t.Fatalf("expected the 11th point to be flushed as a passthrough linear move, got %+v", last)
	}
}
