// Package raster holds layer-agnostic rasterization mechanics: scanline
// polygon fill and Bresenham line rasterization. Both StaticGridLayer and
// RollingGridLayer call into this package from their FillPolygon/FillPath
// methods rather than each reimplementing the mechanics.
package raster

import (
	"math"
	"sort"
)

// Point is a plain 2D coordinate in whatever metric frame the caller is
// working in (always Local, in practice) - this package has no notion of
// coordinate frame tagging, since it only needs X/Y arithmetic.
type Point struct {
	X, Y float64
}

// Grid describes the cell geometry a rasterization target is addressed
// through: cell (0,0) covers [originX, originX+precision) x [originY,
// originY+precision), and so on.
type Grid struct {
	OriginX, OriginY float64
	Precision        float64
	Cols, Rows       int
}

func (g Grid) colFor(x float64) int {
	return int(math.Floor((x - g.OriginX) / g.Precision))
}

func (g Grid) rowFor(y float64) int {
	return int(math.Floor((y - g.OriginY) / g.Precision))
}

// FillPolygon rasterizes a closed, CCW ring via scanline fill: for each
// row of cells, it intersects every polygon edge against the row's
// vertical center, sorts the resulting X intersections, and fills, for
// each alternating pair (the standard even-odd scanline rule), every cell
// whose center X lies in the half-open span [left, right). It calls set
// for every (col, row) whose center is inside the polygon.
//
// An edge is considered to intersect a scanline when the scanline passes
// through the half-open interval [min(y0,y1), max(y0,y1)) - this is the
// standard convention for avoiding double-counting a vertex that lies
// exactly on a scanline.
func FillPolygon(vertices []Point, g Grid, set func(col, row int)) {
	if len(vertices) < 3 {
		return
	}

	minRow, maxRow := g.Rows, -1
	for _, v := range vertices {
		r := g.rowFor(v.Y)
		if r < minRow {
			minRow = r
		}
		if r > maxRow {
			maxRow = r
		}
	}
	if minRow < 0 {
		minRow = 0
	}
	if maxRow > g.Rows-1 {
		maxRow = g.Rows - 1
	}

	n := len(vertices)
	var xs []float64

	for row := minRow; row <= maxRow; row++ {
		scanY := g.OriginY + (float64(row)+0.5)*g.Precision

		xs = xs[:0]
		for i := 0; i < n; i++ {
			a := vertices[i]
			b := vertices[(i+1)%n]
			if a.Y == b.Y {
				continue
			}
			lo, hi := a.Y, b.Y
			if lo > hi {
				lo, hi = hi, lo
			}
			if scanY < lo || scanY >= hi {
				continue
			}
			t := (scanY - a.Y) / (b.Y - a.Y)
			xs = append(xs, a.X+t*(b.X-a.X))
		}

		if len(xs) < 2 {
			continue
		}
		sort.Float64s(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			startCol := int(math.Ceil((xs[i]-g.OriginX)/g.Precision - 0.5))
			endCol := int(math.Ceil((xs[i+1]-g.OriginX)/g.Precision-0.5)) - 1
			if startCol < 0 {
				startCol = 0
			}
			if endCol > g.Cols-1 {
				endCol = g.Cols - 1
			}
			for col := startCol; col <= endCol; col++ {
				set(col, row)
			}
		}
	}
}
