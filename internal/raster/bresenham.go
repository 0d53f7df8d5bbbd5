package raster

// FillPath rasterizes an open polyline via Bresenham's line algorithm
// applied to each consecutive vertex pair, calling set for one cell per
// step along each segment's major axis (endpoints' cells included). A cell
// that a segment only clips at a corner is not set.
func FillPath(vertices []Point, g Grid, set func(col, row int)) {
	for i := 1; i < len(vertices); i++ {
		bresenham(g.colFor(vertices[i-1].X), g.rowFor(vertices[i-1].Y),
			g.colFor(vertices[i].X), g.rowFor(vertices[i].Y), g, set)
	}
}

func bresenham(x0, y0, x1, y1 int, g Grid, set func(col, row int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		if x >= 0 && x < g.Cols && y >= 0 && y < g.Rows {
			set(x, y)
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
