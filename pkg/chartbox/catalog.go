package chartbox

import "github.com/dhconnelly/rtreego"

// catalogEntry adapts a *ChartBox to rtreego's Spatial interface so the
// tile's Global bounds can be indexed.
type catalogEntry struct {
	tile *ChartBox
}

// Bounds implements rtreego.Spatial.
func (e catalogEntry) Bounds() rtreego.Rect {
	b := e.tile.Mapping().GlobalBounds()
	point := rtreego.Point{b.MinLon, b.MinLat}
	lengths := []float64{
		maxf(b.MaxLon-b.MinLon, minRectDim),
		maxf(b.MaxLat-b.MinLat, minRectDim),
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// minRectDim guards against a degenerate (zero-area) rtreego.Rect, which
// rtreego.NewRect rejects.
const minRectDim = 1e-9

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Catalog is a spatial index over multiple ChartBox tiles, keyed by their
// Global bounds, so a query point or region can be resolved to the tiles
// that cover it without scanning every tile linearly.
type Catalog struct {
	tree    *rtreego.Rtree
	entries []catalogEntry
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{tree: rtreego.NewTree(2, 25, 50)}
}

// Add inserts a tile into the catalog, indexed by its current Global
// bounds. The tile's FrameMapping must already be positioned (via
// MoveToCorners) before it is added.
func (c *Catalog) Add(tile *ChartBox) error {
	if tile == nil || tile.Mapping() == nil || !tile.Mapping().ready {
		return &InvalidGeometryError{Reason: "cannot add a tile with no positioned FrameMapping"}
	}
	entry := catalogEntry{tile: tile}
	c.entries = append(c.entries, entry)
	c.tree.Insert(entry)
	return nil
}

// Query returns every tile whose Global bounds intersect the given
// bounds.
func (c *Catalog) Query(bounds Bounds) []*ChartBox {
	point := rtreego.Point{bounds.MinLon, bounds.MinLat}
	lengths := []float64{
		maxf(bounds.MaxLon-bounds.MinLon, minRectDim),
		maxf(bounds.MaxLat-bounds.MinLat, minRectDim),
	}
	rect, err := rtreego.NewRect(point, lengths)
	if err != nil {
		return nil
	}

	hits := c.tree.SearchIntersect(rect)
	tiles := make([]*ChartBox, 0, len(hits))
	for _, h := range hits {
		tiles = append(tiles, h.(catalogEntry).tile)
	}
	return tiles
}

// Classify resolves global to the first indexed tile whose Global bounds
// contain it, and returns that tile's Classify(local) result. ok is false
// if no tile covers global.
func (c *Catalog) Classify(global Point[GlobalFrame]) (Cell, bool) {
	for _, e := range c.entries {
		b := e.tile.Mapping().GlobalBounds()
		if b.Contains(global.X, global.Y) {
			local := e.tile.Mapping().MapToLocal(global)
			if local.IsNaN() {
				continue
			}
			return e.tile.Classify(local), true
		}
	}
	return UNKNOWN, false
}

// Len returns the number of tiles in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}
