// Package weld drives the arcfit core across a parsed program: it feeds
// tracked endpoints into a sliding SegmentedArc window, and on rejection
// either emits a finalized arc or flushes a passthrough linear move,
// guaranteeing every accepted endpoint eventually reaches the output in one
// form or the other. Grounded on the teacher's vm/main.go dispatch loop and
// the single-pass style of optimize/*.go.
package weld

import (
	"github.com/joushou/arcweld/internal/arcfit"
	"github.com/joushou/arcweld/internal/gcodeio"
	"github.com/joushou/arcweld/internal/geom"
	"github.com/joushou/arcweld/internal/position"
)

// Config configures a welding pass.
type Config struct {
	MinSegments  int
	MaxSegments  int
	ResolutionMM float64
}

// ResultKind tags a WeldResult as either a passthrough linear move or a
// finalized arc.
type ResultKind int

const (
	KindLinear ResultKind = iota
	KindArc
)

// WeldResult is one emitted record, in program order. ERelative is always
// the record's own extrusion delta (the window's accumulated sum for an
// arc, the single move's delta for a passthrough linear) - gcodeout formats
// it directly, matching the relative-E convention (M83) typical of welded
// 3D-printer output.
type WeldResult struct {
	Kind      ResultKind
	Point     geom.Point // for KindLinear: the passthrough endpoint
	ERelative float64
	Arc       geom.Arc // for KindArc: the finalized arc
	Feedrate  float64
}

// Run replays doc through tracker, folding consecutive moves into arcs via
// the arcfit core wherever geometry allows, and returns the welded program
// in emission order.
func Run(doc *gcodeio.Document, trackerCfg position.Config, cfg Config) []WeldResult {
	tracker := position.New(trackerCfg)
	shape := arcfit.New(arcfit.Config{
		MinSegments:  cfg.MinSegments,
		MaxSegments:  cfg.MaxSegments,
		ResolutionMM: cfg.ResolutionMM,
	})

	var results []WeldResult

	flushLinear := func(p geom.Point) {
		results = append(results, WeldResult{Kind: KindLinear, Point: p, ERelative: p.ERelative, Feedrate: tracker.Feedrate()})
	}

	emitShape := func() bool {
		if !shape.IsShape() {
			return false
		}
		arc, ok := shape.TryGetArc()
		if !ok {
			return false
		}
		results = append(results, WeldResult{Kind: KindArc, Arc: arc, ERelative: shape.ShapeERelative(), Feedrate: tracker.Feedrate()})
		return true
	}

	// feed attempts to add p to the current window; on rejection it drains
	// the window (emitting an arc if possible, else flushing points as
	// passthrough linear moves one at a time) and retries p against the
	// freshly-seeded window, exactly the emission discipline spec.md §4.5
	// assigns to the driver. Looping rather than recursing keeps the depth
	// bounded regardless of how many consecutive rejections a pathological
	// program produces.
	feed := func(p geom.Point) {
		for {
			if shape.TryAddPoint(p, p.ERelative) {
				return
			}

			if emitShape() {
				shape.Clear()
				continue
			}

			frontBefore := shape.Front()
			flushLinear(shape.PopFront(frontBefore.ERelative))
		}
	}

	for _, block := range doc.Blocks {
		p, isMove := tracker.Advance(block)
		if !isMove {
			continue
		}
		feed(p)
	}

	// Drain whatever remains in the window at end of program.
	for shape.NumSegments() > 0 {
		if emitShape() {
			shape.Clear()
			break
		}
		frontBefore := shape.Front()
		flushLinear(shape.PopFront(frontBefore.ERelative))
	}

	return results
}
