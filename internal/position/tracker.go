// Package position maintains the absolute machine position and extrusion
// accounting mode that a toolpath program implies, yielding a plain
// (X, Y, Z, ERelative) endpoint per accepted linear move. It is the oracle
// arcweld's arc-fitting core consumes and never reimplements - grounded on
// the teacher's vm/positioning.go (absolute/relative axis resolution) and
// vm/coordinates.go (firmware offset bookkeeping).
package position

import (
	"github.com/joushou/arcweld/internal/gcodeio"
	"github.com/joushou/arcweld/internal/geom"
)

// Config configures a Tracker at construction.
type Config struct {
	// AbsoluteXYZ is the initial XYZ distance mode (true for G90).
	AbsoluteXYZ bool
	// AbsoluteE is the initial extruder distance mode (true for M82).
	AbsoluteE bool
	// OffsetX/Y/Z is a fixed firmware offset applied to every coordinate,
	// mirroring gocode_position_args' firmware offsets in the original
	// ArcWelder source.
	OffsetX, OffsetY, OffsetZ float64
}

// Tracker holds the running absolute position, distance modes, and
// cumulative extrusion of a single toolhead as a program is replayed block
// by block.
type Tracker struct {
	x, y, z   float64
	eAbsolute float64

	absoluteXYZ bool
	absoluteE   bool

	offsetX, offsetY, offsetZ float64

	feedrate float64
}

// New constructs a Tracker positioned at the origin.
func New(cfg Config) *Tracker {
	return &Tracker{
		absoluteXYZ: cfg.AbsoluteXYZ,
		absoluteE:   cfg.AbsoluteE,
		offsetX:     cfg.OffsetX,
		offsetY:     cfg.OffsetY,
		offsetZ:     cfg.OffsetZ,
	}
}

// Position returns the current absolute X, Y, Z.
func (t *Tracker) Position() (x, y, z float64) {
	return t.x, t.y, t.z
}

// Feedrate returns the last F word seen.
func (t *Tracker) Feedrate() float64 { return t.feedrate }

// EAbsolute returns the cumulative absolute extrusion position.
func (t *Tracker) EAbsolute() float64 { return t.eAbsolute }

// Advance applies the position/mode/feedrate effects of a single block and,
// if it was a G1 linear move, returns the resulting endpoint as a
// geom.Point (X, Y, Z, ERelative) plus true. G0/G2/G3 moves update the
// tracked position and return false; non-move blocks (mode changes,
// comments, M-codes) only update tracker state and return false.
func (t *Tracker) Advance(b gcodeio.Block) (geom.Point, bool) {
	if dm, ok := b.DistanceModeWord(); ok {
		t.absoluteXYZ = dm.Command == 90
	}
	if em, ok := b.ExtruderDistanceModeWord(); ok {
		t.absoluteE = em.Command == 82
	}
	if f, ok := b.GetWord('F'); ok {
		t.feedrate = f
	}

	motion, isMotion := b.MotionWord()
	if !isMotion || motion.Command != 1 {
		// Rapids (G0) and arcs (G2/G3) still move the tracked position so
		// later linear moves measure distance from the right place, but
		// only G1 linear moves are handed to the arc-fitting core.
		if isMotion {
			t.applyAxes(b)
		}
		return geom.Point{}, false
	}

	eRelative := t.applyAxes(b)
	return geom.Point{X: t.x, Y: t.y, Z: t.z, ERelative: eRelative}, true
}

// applyAxes resolves X/Y/Z/E against the current distance modes and updates
// the tracker's absolute position, returning the extrusion delta consumed
// by this move.
func (t *Tracker) applyAxes(b gcodeio.Block) float64 {
	newX, newY, newZ := t.x, t.y, t.z

	if v, ok := b.GetWord('X'); ok {
		if t.absoluteXYZ {
			newX = v + t.offsetX
		} else {
			newX = t.x + v
		}
	}
	if v, ok := b.GetWord('Y'); ok {
		if t.absoluteXYZ {
			newY = v + t.offsetY
		} else {
			newY = t.y + v
		}
	}
	if v, ok := b.GetWord('Z'); ok {
		if t.absoluteXYZ {
			newZ = v + t.offsetZ
		} else {
			newZ = t.z + v
		}
	}

	var eRelative float64
	if v, ok := b.GetWord('E'); ok {
		if t.absoluteE {
			eRelative = v - t.eAbsolute
			t.eAbsolute = v
		} else {
			eRelative = v
			t.eAbsolute += v
		}
	}

	t.x, t.y, t.z = newX, newY, newZ
	return eRelative
}
