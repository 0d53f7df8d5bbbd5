package chartbox

import "github.com/teyrana/chartbox/internal/raster"

// StaticGridLayer is a Layer backed by a single fixed-size Sector: tracked
// extent, visible extent, and allocated storage are all the same bounds,
// fixed at construction. It is the right layer type for anything that
// fits in memory whole - a chart's BOUNDARY and CONTOUR layers, in
// practice - as opposed to RollingGridLayer's sliding window over a larger
// logical extent.
type StaticGridLayer struct {
	bounds    BoundBox[LocalFrame]
	precision float64
	side      int
	sector    *Sector
}

// NewStaticGridLayer allocates a StaticGridLayer covering bounds at the
// given precision (meters per cell). bounds must be square; its side
// divided by precision must be a whole number of cells.
func NewStaticGridLayer(bounds BoundBox[LocalFrame], precision float64) (*StaticGridLayer, error) {
	if !bounds.IsSquare() {
		return nil, &InvalidGeometryError{Reason: "StaticGridLayer bounds must be square"}
	}
	side := int(bounds.Width()/precision + 0.5)
	if side <= 0 {
		return nil, &InvalidGeometryError{Reason: "StaticGridLayer side must be positive"}
	}
	return &StaticGridLayer{
		bounds:    bounds,
		precision: precision,
		side:      side,
		sector:    NewSector(side),
	}, nil
}

func (l *StaticGridLayer) cellCoords(p Point[LocalFrame]) (col, row int, ok bool) {
	if !l.bounds.ContainsPoint(p) {
		return 0, 0, false
	}
	col = int((p.X - l.bounds.Min.X) / l.precision)
	row = int((p.Y - l.bounds.Min.Y) / l.precision)
	if col >= l.side {
		col = l.side - 1
	}
	if row >= l.side {
		row = l.side - 1
	}
	return col, row, true
}

// Get implements Layer.
func (l *StaticGridLayer) Get(p Point[LocalFrame]) Cell {
	col, row, ok := l.cellCoords(p)
	if !ok {
		return UNKNOWN
	}
	return l.sector.Get(col, row)
}

// Store implements Layer.
func (l *StaticGridLayer) Store(p Point[LocalFrame], v Cell) bool {
	col, row, ok := l.cellCoords(p)
	if !ok {
		return false
	}
	l.sector.Set(col, row, v)
	return true
}

// Fill implements Layer.
func (l *StaticGridLayer) Fill(v Cell) {
	l.sector.Fill(v)
}

// FillBox implements Layer.
func (l *StaticGridLayer) FillBox(box BoundBox[LocalFrame], v Cell) {
	clamped := box
	if clamped.Min.X < l.bounds.Min.X {
		clamped.Min.X = l.bounds.Min.X
	}
	if clamped.Min.Y < l.bounds.Min.Y {
		clamped.Min.Y = l.bounds.Min.Y
	}
	if clamped.Max.X > l.bounds.Max.X {
		clamped.Max.X = l.bounds.Max.X
	}
	if clamped.Max.Y > l.bounds.Max.Y {
		clamped.Max.Y = l.bounds.Max.Y
	}

	minCol, minRow, _ := l.cellCoords(clamped.Min)
	maxCol, maxRow, _ := l.cellCoords(Point[LocalFrame]{X: clamped.Max.X - 1e-9, Y: clamped.Max.Y - 1e-9})
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			l.sector.Set(col, row, v)
		}
	}
}

func (l *StaticGridLayer) grid() raster.Grid {
	return raster.Grid{
		OriginX:   l.bounds.Min.X,
		OriginY:   l.bounds.Min.Y,
		Precision: l.precision,
		Cols:      l.side,
		Rows:      l.side,
	}
}

// FillPolygon implements Layer.
func (l *StaticGridLayer) FillPolygon(poly *Polygon[LocalFrame], v Cell) {
	verts := toRasterPoints(poly.Vertices())
	raster.FillPolygon(verts, l.grid(), func(col, row int) {
		l.sector.Set(col, row, v)
	})
}

// FillPath implements Layer.
func (l *StaticGridLayer) FillPath(path *Path[LocalFrame], v Cell) {
	verts := toRasterPoints(path.Vertices())
	raster.FillPath(verts, l.grid(), func(col, row int) {
		l.sector.Set(col, row, v)
	})
}

// Bounds implements Layer.
func (l *StaticGridLayer) Bounds() BoundBox[LocalFrame] {
	return l.bounds
}

// Precision implements Layer.
func (l *StaticGridLayer) Precision() float64 {
	return l.precision
}

// Side returns the layer's edge length in cells.
func (l *StaticGridLayer) Side() int {
	return l.side
}

func toRasterPoints(pts []Point[LocalFrame]) []raster.Point {
	out := make([]raster.Point, len(pts))
	for i, p := range pts {
		out[i] = raster.Point{X: p.X, Y: p.Y}
	}
	return out
}

var _ Layer = (*StaticGridLayer)(nil)
