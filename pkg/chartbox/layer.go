package chartbox

import "context"

// Layer is the contract shared by RollingGridLayer and StaticGridLayer: a
// rectangular occupancy grid in the Local frame that can be read, written,
// and rasterized into.
type Layer interface {
	// Get returns the cell at p, or UNKNOWN if p falls outside Bounds.
	Get(p Point[LocalFrame]) Cell
	// Store writes v at p. It returns false - without error - if p falls
	// outside the layer's visible/tracked bounds; this is a deliberately
	// silent failure mode, not an error condition.
	Store(p Point[LocalFrame], v Cell) bool
	// Fill sets every cell currently visible to v.
	Fill(v Cell)
	// FillBox sets every cell within box to v.
	FillBox(box BoundBox[LocalFrame], v Cell)
	// FillPolygon rasterizes poly via scanline fill, writing v at every
	// interior cell.
	FillPolygon(poly *Polygon[LocalFrame], v Cell)
	// FillPath rasterizes path's segments with Bresenham's line algorithm,
	// writing v at one cell per step along each segment's major axis; a
	// cell the path only clips at a corner is not written.
	FillPath(path *Path[LocalFrame], v Cell)
	// Bounds returns the layer's current visible extent.
	Bounds() BoundBox[LocalFrame]
	// Precision returns the edge length, in meters, of one cell.
	Precision() float64
}

// Role names the semantic purpose of a StaticGridLayer within a ChartBox.
type Role string

const (
	// RoleBoundary marks the navigable-area outline: CLEAR inside, BLOCK
	// (or left UNKNOWN) outside.
	RoleBoundary Role = "boundary"
	// RoleContour marks depth-contour or hazard polygons, whose interior
	// classification (BLOCK or CLEAR) is feature-specific.
	RoleContour Role = "contour"
)

// Feature is one polygon emitted by a FeatureSource, already tagged with
// the layer role it belongs to and the Cell value its interior should
// receive.
type Feature struct {
	Role        Role
	Polygon     Polygon[GlobalFrame]
	InsideClass Cell
}

// FeatureSource streams the polygons that make up a chart: first its
// overall Global-frame bounds, then each Feature in turn. Concrete
// adapters (GeoJSONSource, ShapefileSource) live in pkg/sources.
type FeatureSource interface {
	// Bounds returns the Global-frame extent this source covers.
	Bounds(ctx context.Context) (Bounds, error)
	// Features streams features to the given callback. It returns when
	// the source is exhausted, the callback returns an error, or ctx is
	// canceled.
	Features(ctx context.Context, fn func(Feature) error) error
}

// RasterSink samples a ChartBox's Classify function over a box at a given
// precision and writes the result as an image. The concrete PNGSink
// adapter lives in pkg/sinks.
type RasterSink interface {
	Write(ctx context.Context, box BoundBox[LocalFrame], precision float64, classify func(Point[LocalFrame]) Cell) error
}
