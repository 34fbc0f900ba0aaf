// Package gcodeout renders welded programs back to text. Passthrough linear
// moves use the teacher's trimmed-trailing-zero numeric style
// (export/string.go's floatToString); arc records are formatted by FormatArc
// with fixed five-decimal precision, the same convention arcfit uses for its
// own shape buffer - the two conventions are kept deliberately distinct
// rather than conflated.
package gcodeout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joushou/arcweld/internal/geom"
)

// floatToString formats f with p decimal digits, then strips any trailing
// zeroes (and a trailing decimal point) the way the teacher's generator
// does for non-arc gcode.
func floatToString(f float64, p int) string {
	x := strconv.FormatFloat(f, 'f', p, 64)
	if strings.ContainsRune(x, '.') {
		for x[len(x)-1] == '0' {
			x = x[:len(x)-1]
		}
		if x[len(x)-1] == '.' {
			x = x[:len(x)-1]
		}
	}
	return x
}

// LinearWriter renders successive passthrough G1 moves, tracking the last
// emitted Z the way the teacher's StringCodeGenerator.Move tracks
// s.GetPosition() - a Z word is only written when it differs from the last
// one emitted, since most of a print's moves share the current layer's Z and
// repeating it on every line would be noise, but a layer change or Z-hop
// still needs its Z word to reach the output.
type LinearWriter struct {
	lastZ    float64
	hasLastZ bool
}

// Format renders a single passthrough G1 move. e is the extrusion delta
// (emitted as a relative E word; a zero e omits E, as 3D-printer travel
// moves with no extrusion do).
// feedrate of zero omits F. Z is emitted only when it differs from the Z of
// the previous call to Format on this writer.
func (w *LinearWriter) Format(p geom.Point, e, feedrate float64, precision int) string {
	var b strings.Builder
	b.WriteString("G1 X")
	b.WriteString(floatToString(p.X, precision))
	b.WriteString(" Y")
	b.WriteString(floatToString(p.Y, precision))
	if !w.hasLastZ || p.Z != w.lastZ {
		b.WriteString(" Z")
		b.WriteString(floatToString(p.Z, precision))
		w.lastZ = p.Z
		w.hasLastZ = true
	}
	if e != 0 {
		b.WriteString(" E")
		b.WriteString(floatToString(e, precision))
	}
	if feedrate != 0 {
		b.WriteString(" F")
		b.WriteString(floatToString(feedrate, 0))
	}
	return b.String()
}

// FormatArc renders a single finalized arc as a G2 (clockwise) or G3
// (counter-clockwise) command: fixed five-decimal precision for X, Y, I, J,
// and E, trailing zeros retained - the convention spec.md mandates for arc
// records, deliberately distinct from LinearWriter.Format's trimmed style. This is
// the same fixed formatting arcfit.SegmentedArc applies to its own shape
// buffer; FormatArc exists for callers (devstream, cmd/arcweld) holding a
// detached geom.Arc with no live SegmentedArc to ask.
func FormatArc(a geom.Arc, eRelative, feedrate float64) string {
	i := a.Center.X - a.StartPoint.X
	j := a.Center.Y - a.StartPoint.Y

	cmd := "G3"
	if a.Clockwise() {
		cmd = "G2"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s X%.5f Y%.5f I%.5f J%.5f", cmd, a.EndPoint.X, a.EndPoint.Y, i, j)
	if eRelative != 0 {
		fmt.Fprintf(&b, " E%.5f", eRelative)
	}
	if feedrate != 0 {
		fmt.Fprintf(&b, " F%.0f", feedrate)
	}
	return b.String()
}
