package chartbox

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/teyrana/chartbox/internal/raster"
)

// RollingGridLayer is a Layer whose visible window is a K x K torus of
// N-cell-wide Sectors sliding across a much larger tracked extent.
// Scrolling the view evicts the trailing edge of sectors (saving them to
// an optional on-disk cache) and loads the new leading edge (from cache,
// or UNKNOWN if never saved), without ever copying the sectors that stay
// in view - only the ring's anchor index moves.
type RollingGridLayer struct {
	n, k      int
	precision float64

	trackedBounds BoundBox[LocalFrame]
	visibleBounds BoundBox[LocalFrame]

	// sectors is a flat K*K row-major array of ring-buffer slots; slot
	// (col,row) lives at sectors[row*k+col].
	sectors []*Sector

	anchorCol, anchorRow int

	cacheRoot string
}

// NewRollingGridLayer allocates a RollingGridLayer tracking the given
// bounds, with sectors of side n cells, a view of k x k sectors, at the
// given precision (meters per cell). If cacheRoot is non-empty, sectors
// are mirrored to files under that directory as they scroll out of view.
//
// The initial view is placed at the southwest corner of tracked.
func NewRollingGridLayer(tracked BoundBox[LocalFrame], n, k int, precision float64, cacheRoot string) (*RollingGridLayer, error) {
	if n <= 0 || k <= 0 || precision <= 0 {
		return nil, &InvalidGeometryError{Reason: "RollingGridLayer requires positive n, k, precision"}
	}
	viewSide := float64(n*k) * precision
	if tracked.Width() < viewSide-localTolerance || tracked.Height() < viewSide-localTolerance {
		return nil, &OutOfRangeError{Reason: fmt.Sprintf("tracked bounds %.1fx%.1f smaller than view side %.1f", tracked.Width(), tracked.Height(), viewSide)}
	}

	l := &RollingGridLayer{
		n: n, k: k, precision: precision,
		trackedBounds: tracked,
		cacheRoot:     cacheRoot,
	}

	l.visibleBounds = BoundBox[LocalFrame]{
		Min: tracked.Min,
		Max: Point[LocalFrame]{X: tracked.Min.X + viewSide, Y: tracked.Min.Y + viewSide},
	}

	l.sectors = make([]*Sector, k*k)
	for row := 0; row < k; row++ {
		for col := 0; col < k; col++ {
			origin := Point[LocalFrame]{
				X: l.visibleBounds.Min.X + float64(col)*float64(n)*precision,
				Y: l.visibleBounds.Min.Y + float64(row)*float64(n)*precision,
			}
			l.sectors[row*k+col] = l.loadOrBlank(origin)
		}
	}
	return l, nil
}

func (l *RollingGridLayer) viewSide() float64 {
	return float64(l.n*l.k) * l.precision
}

func (l *RollingGridLayer) sectorFileName(origin Point[LocalFrame]) string {
	eastMM := int64(math.Round(origin.X * 1000))
	northMM := int64(math.Round(origin.Y * 1000))
	precisionMM := int(math.Round(l.precision * 1000))
	return fmt.Sprintf("sector_%010dE_%010dN_N%04d_p%05d.bin", eastMM, northMM, l.n, precisionMM)
}

func (l *RollingGridLayer) loadOrBlank(origin Point[LocalFrame]) *Sector {
	s := NewSector(l.n)
	if l.cacheRoot == "" {
		return s
	}
	path := filepath.Join(l.cacheRoot, l.sectorFileName(origin))
	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	_ = s.LoadBytes(raw)
	return s
}

func (l *RollingGridLayer) save(origin Point[LocalFrame], s *Sector) error {
	if l.cacheRoot == "" {
		return nil
	}
	if err := os.MkdirAll(l.cacheRoot, 0o755); err != nil {
		return &IoError{Path: l.cacheRoot, Err: err}
	}
	path := filepath.Join(l.cacheRoot, l.sectorFileName(origin))
	if err := os.WriteFile(path, s.Bytes(), 0o644); err != nil {
		return &IoError{Path: path, Err: err}
	}
	return nil
}

// slotAt returns the ring-buffer slot for a sector at view-relative
// sector coordinates (sectorCol, sectorRow) in [0,k)^2 - step 5 of the
// index arithmetic: sector_slot = (sector_in_view + anchor) mod k.
func (l *RollingGridLayer) slotAt(sectorCol, sectorRow int) (col, row int) {
	col = (sectorCol + l.anchorCol) % l.k
	row = (sectorRow + l.anchorRow) % l.k
	return col, row
}

func (l *RollingGridLayer) sectorAt(sectorCol, sectorRow int) *Sector {
	col, row := l.slotAt(sectorCol, sectorRow)
	return l.sectors[row*l.k+col]
}

// cellCoords implements steps 1-4 of the index arithmetic in §4.4: it maps
// a Local point inside visibleBounds down to (sectorCol, sectorRow,
// cellCol, cellRow).
func (l *RollingGridLayer) cellCoords(p Point[LocalFrame]) (sectorCol, sectorRow, cellCol, cellRow int, ok bool) {
	if !l.visibleBounds.ContainsPoint(p) {
		return 0, 0, 0, 0, false
	}
	vx := p.X - l.visibleBounds.Min.X
	vy := p.Y - l.visibleBounds.Min.Y

	cellInViewCol := int(vx / l.precision)
	cellInViewRow := int(vy / l.precision)

	maxCell := l.n*l.k - 1
	if cellInViewCol > maxCell {
		cellInViewCol = maxCell
	}
	if cellInViewRow > maxCell {
		cellInViewRow = maxCell
	}

	sectorCol = cellInViewCol / l.n
	sectorRow = cellInViewRow / l.n
	cellCol = cellInViewCol % l.n
	cellRow = cellInViewRow % l.n
	return sectorCol, sectorRow, cellCol, cellRow, true
}

// Get implements Layer.
func (l *RollingGridLayer) Get(p Point[LocalFrame]) Cell {
	sectorCol, sectorRow, cellCol, cellRow, ok := l.cellCoords(p)
	if !ok {
		return UNKNOWN
	}
	return l.sectorAt(sectorCol, sectorRow).Get(cellCol, cellRow)
}

// Store implements Layer. It returns false, silently, when p falls
// outside the current view - per spec this is not an error, since sparse
// writes across the tracked extent are expected to miss the view.
func (l *RollingGridLayer) Store(p Point[LocalFrame], v Cell) bool {
	sectorCol, sectorRow, cellCol, cellRow, ok := l.cellCoords(p)
	if !ok {
		return false
	}
	l.sectorAt(sectorCol, sectorRow).Set(cellCol, cellRow, v)
	return true
}

// Fill implements Layer: every sector currently in view is set to v.
func (l *RollingGridLayer) Fill(v Cell) {
	for _, s := range l.sectors {
		s.Fill(v)
	}
}

// FillBox implements Layer.
func (l *RollingGridLayer) FillBox(box BoundBox[LocalFrame], v Cell) {
	clamped := box
	if clamped.Min.X < l.visibleBounds.Min.X {
		clamped.Min.X = l.visibleBounds.Min.X
	}
	if clamped.Min.Y < l.visibleBounds.Min.Y {
		clamped.Min.Y = l.visibleBounds.Min.Y
	}
	if clamped.Max.X > l.visibleBounds.Max.X {
		clamped.Max.X = l.visibleBounds.Max.X
	}
	if clamped.Max.Y > l.visibleBounds.Max.Y {
		clamped.Max.Y = l.visibleBounds.Max.Y
	}
	if clamped.Min.X >= clamped.Max.X || clamped.Min.Y >= clamped.Max.Y {
		return
	}

	for y := clamped.Min.Y + l.precision/2; y < clamped.Max.Y; y += l.precision {
		for x := clamped.Min.X + l.precision/2; x < clamped.Max.X; x += l.precision {
			l.Store(Point[LocalFrame]{X: x, Y: y}, v)
		}
	}
}

func (l *RollingGridLayer) grid() raster.Grid {
	cellsPerSide := l.n * l.k
	return raster.Grid{
		OriginX:   l.visibleBounds.Min.X,
		OriginY:   l.visibleBounds.Min.Y,
		Precision: l.precision,
		Cols:      cellsPerSide,
		Rows:      cellsPerSide,
	}
}

// FillPolygon implements Layer.
func (l *RollingGridLayer) FillPolygon(poly *Polygon[LocalFrame], v Cell) {
	verts := toRasterPoints(poly.Vertices())
	raster.FillPolygon(verts, l.grid(), func(col, row int) {
		l.storeViewCell(col, row, v)
	})
}

// FillPath implements Layer.
func (l *RollingGridLayer) FillPath(path *Path[LocalFrame], v Cell) {
	verts := toRasterPoints(path.Vertices())
	raster.FillPath(verts, l.grid(), func(col, row int) {
		l.storeViewCell(col, row, v)
	})
}

func (l *RollingGridLayer) storeViewCell(viewCol, viewRow int, v Cell) {
	sectorCol, sectorRow := viewCol/l.n, viewRow/l.n
	cellCol, cellRow := viewCol%l.n, viewRow%l.n
	l.sectorAt(sectorCol, sectorRow).Set(cellCol, cellRow, v)
}

// Bounds implements Layer: the current visible window.
func (l *RollingGridLayer) Bounds() BoundBox[LocalFrame] {
	return l.visibleBounds
}

// TrackedBounds returns the full logical extent this layer represents.
func (l *RollingGridLayer) TrackedBounds() BoundBox[LocalFrame] {
	return l.trackedBounds
}

// Precision implements Layer.
func (l *RollingGridLayer) Precision() float64 {
	return l.precision
}

func (l *RollingGridLayer) sectorSpan() float64 {
	return float64(l.n) * l.precision
}

// ScrollEast moves the view one sector width to the east.
func (l *RollingGridLayer) ScrollEast() error { return l.scrollColumn(1) }

// ScrollWest moves the view one sector width to the west.
func (l *RollingGridLayer) ScrollWest() error { return l.scrollColumn(-1) }

// ScrollNorth moves the view one sector width to the north.
func (l *RollingGridLayer) ScrollNorth() error { return l.scrollRow(1) }

// ScrollSouth moves the view one sector width to the south.
func (l *RollingGridLayer) ScrollSouth() error { return l.scrollRow(-1) }

// scrollColumn implements a single east (dir=+1) or west (dir=-1)
// sector-width scroll: steps 1-6 of §4.4's Scroll algorithm, specialized
// to the column dimension.
func (l *RollingGridLayer) scrollColumn(dir int) error {
	span := l.sectorSpan()
	delta := float64(dir) * span
	newVisible := BoundBox[LocalFrame]{
		Min: Point[LocalFrame]{X: l.visibleBounds.Min.X + delta, Y: l.visibleBounds.Min.Y},
		Max: Point[LocalFrame]{X: l.visibleBounds.Max.X + delta, Y: l.visibleBounds.Max.Y},
	}
	if !l.trackedBounds.Contains(newVisible) {
		return &OutOfRangeError{Reason: "scroll would leave tracked bounds"}
	}

	// The trailing edge (about to leave view) is the ring's entire
	// physical column at the current anchor: for east scrolls that is
	// the westmost view column (view-col 0); for west scrolls it is the
	// eastmost view column (view-col k-1).
	var trailingSlotCol int
	var trailingViewCol int
	if dir > 0 {
		trailingSlotCol = l.anchorCol
		trailingViewCol = 0
	} else {
		trailingSlotCol = (l.anchorCol - 1 + l.k) % l.k
		trailingViewCol = l.k - 1
	}

	for physRow := 0; physRow < l.k; physRow++ {
		viewRow := (physRow - l.anchorRow + l.k) % l.k
		origin := Point[LocalFrame]{
			X: l.visibleBounds.Min.X + float64(trailingViewCol)*span,
			Y: l.visibleBounds.Min.Y + float64(viewRow)*span,
		}
		if err := l.save(origin, l.sectors[physRow*l.k+trailingSlotCol]); err != nil {
			return err
		}
	}

	if dir > 0 {
		l.anchorCol = (l.anchorCol + 1) % l.k
	} else {
		l.anchorCol = (l.anchorCol - 1 + l.k) % l.k
	}

	// The slot just vacated becomes the new leading edge, in its new
	// position under newVisible.
	leadingSlotCol := trailingSlotCol
	var leadingViewCol int
	if dir > 0 {
		leadingViewCol = l.k - 1
	} else {
		leadingViewCol = 0
	}
	for physRow := 0; physRow < l.k; physRow++ {
		viewRow := (physRow - l.anchorRow + l.k) % l.k
		origin := Point[LocalFrame]{
			X: newVisible.Min.X + float64(leadingViewCol)*span,
			Y: newVisible.Min.Y + float64(viewRow)*span,
		}
		l.sectors[physRow*l.k+leadingSlotCol] = l.loadOrBlank(origin)
	}

	l.visibleBounds = newVisible
	return nil
}

// scrollRow implements a single north (dir=+1) or south (dir=-1)
// sector-width scroll, symmetric to scrollColumn.
func (l *RollingGridLayer) scrollRow(dir int) error {
	span := l.sectorSpan()
	delta := float64(dir) * span
	newVisible := BoundBox[LocalFrame]{
		Min: Point[LocalFrame]{X: l.visibleBounds.Min.X, Y: l.visibleBounds.Min.Y + delta},
		Max: Point[LocalFrame]{X: l.visibleBounds.Max.X, Y: l.visibleBounds.Max.Y + delta},
	}
	if !l.trackedBounds.Contains(newVisible) {
		return &OutOfRangeError{Reason: "scroll would leave tracked bounds"}
	}

	var trailingSlotRow int
	var trailingViewRow int
	if dir > 0 {
		trailingSlotRow = l.anchorRow
		trailingViewRow = 0
	} else {
		trailingSlotRow = (l.anchorRow - 1 + l.k) % l.k
		trailingViewRow = l.k - 1
	}

	for physCol := 0; physCol < l.k; physCol++ {
		viewCol := (physCol - l.anchorCol + l.k) % l.k
		origin := Point[LocalFrame]{
			X: l.visibleBounds.Min.X + float64(viewCol)*span,
			Y: l.visibleBounds.Min.Y + float64(trailingViewRow)*span,
		}
		if err := l.save(origin, l.sectors[trailingSlotRow*l.k+physCol]); err != nil {
			return err
		}
	}

	if dir > 0 {
		l.anchorRow = (l.anchorRow + 1) % l.k
	} else {
		l.anchorRow = (l.anchorRow - 1 + l.k) % l.k
	}

	leadingSlotRow := trailingSlotRow
	var leadingViewRow int
	if dir > 0 {
		leadingViewRow = l.k - 1
	} else {
		leadingViewRow = 0
	}
	for physCol := 0; physCol < l.k; physCol++ {
		viewCol := (physCol - l.anchorCol + l.k) % l.k
		origin := Point[LocalFrame]{
			X: newVisible.Min.X + float64(viewCol)*span,
			Y: newVisible.Min.Y + float64(leadingViewRow)*span,
		}
		l.sectors[leadingSlotRow*l.k+physCol] = l.loadOrBlank(origin)
	}

	l.visibleBounds = newVisible
	return nil
}

// View recenters the visible window on center, snapping to the sector
// grid and scrolling one sector at a time until the window is in place.
// A window that would cross the edge of tracked bounds is shifted back
// inside them. It fails with *OutOfRangeError if center itself lies
// outside tracked bounds.
func (l *RollingGridLayer) View(center Point[LocalFrame]) error {
	if !l.trackedBounds.ContainsPoint(center) {
		return &OutOfRangeError{Reason: "view center lies outside tracked bounds"}
	}
	span := l.sectorSpan()
	half := l.viewSide() / 2

	target := BoundBox[LocalFrame]{
		Min: Point[LocalFrame]{X: center.X - half, Y: center.Y - half},
	}
	target = target.Snap(span, l.viewSide())

	if target.Min.X < l.trackedBounds.Min.X {
		target = target.Snap(span, l.viewSide())
		target.Min.X = l.trackedBounds.Min.X
		target.Max.X = target.Min.X + l.viewSide()
	}
	if target.Min.Y < l.trackedBounds.Min.Y {
		target.Min.Y = l.trackedBounds.Min.Y
		target.Max.Y = target.Min.Y + l.viewSide()
	}
	if target.Max.X > l.trackedBounds.Max.X {
		target.Max.X = l.trackedBounds.Max.X
		target.Min.X = target.Max.X - l.viewSide()
	}
	if target.Max.Y > l.trackedBounds.Max.Y {
		target.Max.Y = l.trackedBounds.Max.Y
		target.Min.Y = target.Max.Y - l.viewSide()
	}

	for l.visibleBounds.Min.X < target.Min.X {
		if err := l.ScrollEast(); err != nil {
			return err
		}
	}
	for l.visibleBounds.Min.X > target.Min.X {
		if err := l.ScrollWest(); err != nil {
			return err
		}
	}
	for l.visibleBounds.Min.Y < target.Min.Y {
		if err := l.ScrollNorth(); err != nil {
			return err
		}
	}
	for l.visibleBounds.Min.Y > target.Min.Y {
		if err := l.ScrollSouth(); err != nil {
			return err
		}
	}
	return nil
}

var _ Layer = (*RollingGridLayer)(nil)
