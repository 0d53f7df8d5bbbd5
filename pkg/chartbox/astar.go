package chartbox

import (
	"container/heap"
	"math"
)

// direction encodes one of the 8 cardinal/diagonal steps a predecessor
// link can point along, packed into the low 3 bits of a closed-set byte.
type direction uint8

const (
	dirEast direction = iota
	dirNorthEast
	dirNorth
	dirNorthWest
	dirWest
	dirSouthWest
	dirSouth
	dirSouthEast
)

var directionDeltas = [8][2]int{
	dirEast:      {1, 0},
	dirNorthEast: {1, 1},
	dirNorth:     {0, 1},
	dirNorthWest: {-1, 1},
	dirWest:      {-1, 0},
	dirSouthWest: {-1, -1},
	dirSouth:     {0, -1},
	dirSouthEast: {1, -1},
}

const (
	closedVisitedBit = 1 << 7
	closedStartBit   = 1 << 6
	closedDirMask    = 0x07
)

// AStarPlanner finds a shortest path between two Local-frame points over
// a Layer, treating any cell with value < UNKNOWN (0x80) as passable and
// everything else as blocked.
type AStarPlanner struct {
	// MinWaypointSeparation is the minimum distance, in cells, between
	// retained waypoints after straight-run simplification. Zero means
	// simplification is disabled. Default is set by NewAStarPlanner to 1
	// (collapse collinear runs, but keep one waypoint per remaining
	// direction change).
	MinWaypointSeparation int
}

// NewAStarPlanner returns a planner with straight-run simplification
// enabled at the default minimum separation of one cell.
func NewAStarPlanner() *AStarPlanner {
	return &AStarPlanner{MinWaypointSeparation: 1}
}

type openItem struct {
	col, row int
	g, f     float64
	index    int
}

type openQueue []*openItem

func (q openQueue) Len() int            { return len(q) }
func (q openQueue) Less(i, j int) bool  { return q[i].f < q[j].f }
func (q openQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index, q[j].index = i, j
}
func (q *openQueue) Push(x any) {
	item := x.(*openItem)
	item.index = len(*q)
	*q = append(*q, item)
}
func (q *openQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// Plan searches layer (whose Bounds/Precision define the cell grid) for a
// shortest 8-connected path from start to goal, both in the Local frame.
// It returns an empty path if start is out of bounds, either endpoint is
// non-passable, or the open set exhausts before reaching goal.
func (p *AStarPlanner) Plan(layer Layer, start, goal Point[LocalFrame]) Path[LocalFrame] {
	bounds := layer.Bounds()
	precision := layer.Precision()
	cols := int(bounds.Width()/precision + 0.5)
	rows := int(bounds.Height()/precision + 0.5)

	toCell := func(pt Point[LocalFrame]) (int, int, bool) {
		if !bounds.ContainsPoint(pt) {
			return 0, 0, false
		}
		col := int((pt.X - bounds.Min.X) / precision)
		row := int((pt.Y - bounds.Min.Y) / precision)
		if col >= cols {
			col = cols - 1
		}
		if row >= rows {
			row = rows - 1
		}
		return col, row, true
	}
	cellCenter := func(col, row int) Point[LocalFrame] {
		return Point[LocalFrame]{
			X: bounds.Min.X + (float64(col)+0.5)*precision,
			Y: bounds.Min.Y + (float64(row)+0.5)*precision,
		}
	}
	passable := func(col, row int) bool {
		return layer.Get(cellCenter(col, row)).Passable()
	}

	startCol, startRow, ok := toCell(start)
	if !ok || !passable(startCol, startRow) {
		return Path[LocalFrame]{}
	}
	goalCol, goalRow, ok := toCell(goal)
	if !ok || !passable(goalCol, goalRow) {
		return Path[LocalFrame]{}
	}

	closed := make([]byte, cols*rows)
	idx := func(col, row int) int { return row*cols + col }
	closed[idx(startCol, startRow)] = closedVisitedBit | closedStartBit

	gScore := make([]float64, cols*rows)
	for i := range gScore {
		gScore[i] = math.Inf(1)
	}
	gScore[idx(startCol, startRow)] = 0

	heuristic := func(col, row int) float64 {
		dx := float64(col - goalCol)
		dy := float64(row - goalRow)
		return math.Hypot(dx, dy) * precision
	}

	open := &openQueue{}
	heap.Init(open)
	heap.Push(open, &openItem{col: startCol, row: startRow, g: 0, f: heuristic(startCol, startRow)})

	onOpen := make(map[int]bool)
	onOpen[idx(startCol, startRow)] = true

	found := false
	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		ci := idx(current.col, current.row)
		delete(onOpen, ci)

		if current.col == goalCol && current.row == goalRow {
			found = true
			break
		}
		if current.g > gScore[ci] {
			continue
		}

		for dir, delta := range directionDeltas {
			nc, nr := current.col+delta[0], current.row+delta[1]
			if nc < 0 || nc >= cols || nr < 0 || nr >= rows {
				continue
			}
			if !passable(nc, nr) {
				continue
			}
			step := 1.0
			if delta[0] != 0 && delta[1] != 0 {
				step = math.Sqrt2
			}
			tentativeG := current.g + step*precision

			ni := idx(nc, nr)
			if tentativeG < gScore[ni] {
				gScore[ni] = tentativeG
				closed[ni] = closedVisitedBit | byte(dir)&closedDirMask
				f := tentativeG + heuristic(nc, nr)
				if !onOpen[ni] {
					heap.Push(open, &openItem{col: nc, row: nr, g: tentativeG, f: f})
					onOpen[ni] = true
				} else {
					// A cheaper path to an already-open cell: push a
					// fresh entry rather than decrease-key (container/heap
					// has no built-in decrease-key); the stale entry is
					// skipped via the gScore check above when popped.
					heap.Push(open, &openItem{col: nc, row: nr, g: tentativeG, f: f})
				}
			}
		}
	}

	if !found {
		return Path[LocalFrame]{}
	}

	cells := reconstructPath(closed, cols, startCol, startRow, goalCol, goalRow)
	vertices := make([]Point[LocalFrame], len(cells))
	for i, c := range cells {
		vertices[i] = cellCenter(c[0], c[1])
	}

	path := NewPath(vertices)
	if p.MinWaypointSeparation > 0 {
		path = simplifyStraightRuns(path, p.MinWaypointSeparation, precision)
	}
	return path
}

// reconstructPath walks predecessor links from goal back to start using
// the closed-set direction codes, then reverses the result.
func reconstructPath(closed []byte, cols, startCol, startRow, goalCol, goalRow int) [][2]int {
	idx := func(col, row int) int { return row*cols + col }

	var cells [][2]int
	col, row := goalCol, goalRow
	for {
		cells = append(cells, [2]int{col, row})
		b := closed[idx(col, row)]
		if b&closedStartBit != 0 {
			break
		}
		dir := direction(b & closedDirMask)
		delta := directionDeltas[dir]
		// The stored direction points from predecessor to this cell, so
		// walking back subtracts it.
		col -= delta[0]
		row -= delta[1]
	}

	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells
}

// simplifyStraightRuns collapses consecutive collinear vertices into
// their endpoints, then thins the result so retained waypoints are at
// least minSeparation cells apart (straight-line distance between
// retained waypoints, with precision meters per cell).
func simplifyStraightRuns(path Path[LocalFrame], minSeparation int, precision float64) Path[LocalFrame] {
	verts := path.Vertices()
	if len(verts) < 3 {
		return path
	}

	collapsed := []Point[LocalFrame]{verts[0]}
	for i := 1; i < len(verts)-1; i++ {
		prev := collapsed[len(collapsed)-1]
		cur := verts[i]
		next := verts[i+1]
		if isCollinear(prev, cur, next) {
			continue
		}
		collapsed = append(collapsed, cur)
	}
	collapsed = append(collapsed, verts[len(verts)-1])

	if minSeparation <= 1 {
		return NewPath(collapsed)
	}

	thinned := []Point[LocalFrame]{collapsed[0]}
	for i := 1; i < len(collapsed)-1; i++ {
		last := thinned[len(thinned)-1]
		cur := collapsed[i]
		dx := cur.X - last.X
		dy := cur.Y - last.Y
		if math.Hypot(dx, dy) >= float64(minSeparation)*precision {
			thinned = append(thinned, cur)
		}
	}
	thinned = append(thinned, collapsed[len(collapsed)-1])
	return NewPath(thinned)
}

func isCollinear(a, b, c Point[LocalFrame]) bool {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	return math.Abs(cross) < 1e-9
}
