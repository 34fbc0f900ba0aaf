package position

import (
	"testing"

	"github.com/joushou/arcweld/internal/gcodeio"
)

func block(t *testing.T, line string) gcodeio.Block {
	t.Helper()
	doc, err := gcodeio.ParseString(line)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return doc.Blocks[0]
}

func TestAdvanceAbsoluteXYZRelativeE(t *testing.T) {
	tr := New(Config{AbsoluteXYZ: true, AbsoluteE: false})

	p, ok := tr.Advance(block(t, "G1 X1 Y2 Z0 E0.5"))
	if !ok {
		t.Fatal("expected G1 to be reported as a move")
	}
	if p.X != 1 || p.Y != 2 || p.ERelative != 0.5 {
		t.Fatalf("unexpected point: %+v", p)
	}

	p, ok = tr.Advance(block(t, "G1 X3 Y2 E0.25"))
	if !ok {
		t.Fatal("expected second G1 to be a move")
	}
	if p.X != 3 || p.ERelative != 0.25 {
		t.Fatalf("unexpected second point: %+v", p)
	}
}

func TestAdvanceRelativeXYZ(t *testing.T) {
	tr := New(Config{AbsoluteXYZ: false, AbsoluteE: true})

	p, _ := tr.Advance(block(t, "G1 X1 Y1 E1"))
	if p.X != 1 || p.Y != 1 {
		t.Fatalf("unexpected first point: %+v", p)
	}

	p, _ = tr.Advance(block(t, "G1 X1 Y1 E2"))
	if p.X != 2 || p.Y != 2 {
		t.Fatalf("expected relative move to accumulate, got %+v", p)
	}
	if p.ERelative != 1 {
		t.Fatalf("expected absolute-E delta of 1, got %f", p.ERelative)
	}
}

func TestDistanceModeSwitch(t *testing.T) {
	tr := New(Config{AbsoluteXYZ: true})
	tr.Advance(block(t, "G91"))
	tr.Advance(block(t, "G1 X5"))
	p, _ := tr.Advance(block(t, "G1 X5"))
	if p.X != 10 {
		t.Fatalf("expected relative accumulation after G91, got %f", p.X)
	}
}

func TestNonMotionBlockIsNotAMove(t *testing.T) {
	tr := New(Config{AbsoluteXYZ: true})
	_, ok := tr.Advance(block(t, "M104 S200"))
	if ok {
		t.Fatal("expected a non-motion block to not be reported as a move")
	}
}

func TestRapidMovesPositionButIsNotFedToCore(t *testing.T) {
	tr := New(Config{AbsoluteXYZ: true})
	_, ok := tr.Advance(block(t, "G0 X10 Y10"))
	if ok {
		t.Fatal("expected G0 to not be reported as a linear move")
	}
	x, y, _ := tr.Position()
	if x != 10 || y != 10 {
		t.Fatalf("expected G0 to still update tracked position, got (%f,%f)", x, y)
	}
}
