package gcodeio

// Modal group words relevant to printer position/extrusion tracking,
// grounded on the teacher's gcode/modal.go group tables (trimmed down to
// the groups that matter for 3D-printer motion rather than the full
// milling-machine modal group set).
var (
	motionGroup = []Word{
		{'G', 0}, {'G', 1}, {'G', 2}, {'G', 3},
	}
	distanceModeGroup = []Word{
		{'G', 90}, {'G', 91},
	}
	extruderDistanceModeGroup = []Word{
		{'M', 82}, {'M', 83},
	}
)

func (b *Block) firstWordInGroup(group []Word) (Word, bool) {
	for _, n := range b.Nodes {
		if w, ok := n.(*Word); ok {
			for _, g := range group {
				if g.Address == w.Address && g.Command == w.Command {
					return *w, true
				}
			}
		}
	}
	return Word{}, false
}

// MotionWord returns the G0/G1/G2/G3 word governing this block, if any.
func (b *Block) MotionWord() (Word, bool) {
	return b.firstWordInGroup(motionGroup)
}

// DistanceModeWord returns the G90/G91 word in this block, if any.
func (b *Block) DistanceModeWord() (Word, bool) {
	return b.firstWordInGroup(distanceModeGroup)
}

// ExtruderDistanceModeWord returns the M82/M83 word in this block, if any.
func (b *Block) ExtruderDistanceModeWord() (Word, bool) {
	return b.firstWordInGroup(extruderDistanceModeGroup)
}
