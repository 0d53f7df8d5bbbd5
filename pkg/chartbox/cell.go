package chartbox

// Cell is the single-byte occupancy value stored at every grid location.
type Cell uint8

const (
	// CLEAR marks a cell known to be navigable.
	CLEAR Cell = 0x00
	// UNKNOWN is the default fill value for cells that have never been
	// written - no survey or feature has classified them either way.
	UNKNOWN Cell = 0x80
	// BLOCK marks a cell known to be impassable.
	BLOCK Cell = 0xFF
)

// dominates returns the more conservative of two cell values: BLOCK beats
// UNKNOWN beats CLEAR. This is the rule ChartBox.Classify uses to combine
// layers; AStarPlanner decides passability with Cell.Passable instead.
func dominates(a, b Cell) Cell {
	if a > b {
		return a
	}
	return b
}

// Passable reports whether a cell value permits travel: anything strictly
// below UNKNOWN, i.e. CLEAR or an intermediate survey value, but not
// UNKNOWN or BLOCK.
func (c Cell) Passable() bool {
	return c < UNKNOWN
}
