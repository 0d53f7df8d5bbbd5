package chartbox

import (
	"fmt"
	"math"

	"github.com/teyrana/chartbox/internal/geo"
)

// GlobalFrame, UTMFrame, and LocalFrame tag a Point/BoundBox/Polygon/Path
// with the coordinate frame it was built in. They carry no data; their
// only job is to make it a compile error to pass a Local-frame point where
// a UTM-frame point is expected, and vice versa.
type GlobalFrame struct{}
type UTMFrame struct{}
type LocalFrame struct{}

// Point is a 2D coordinate tagged with the frame it belongs to. For
// GlobalFrame, X is longitude and Y is latitude (degrees); for UTMFrame and
// LocalFrame, X is easting and Y is northing (meters).
type Point[F any] struct {
	X, Y float64
}

// IsNaN reports whether this point is the NaN sentinel a failed
// reprojection produces.
func (p Point[F]) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

var nanPoint = Point[LocalFrame]{X: math.NaN(), Y: math.NaN()}

// GlobalPoint, UTMPoint, and LocalPoint name the three frame instantiations
// of Point used throughout chartbox.
type (
	GlobalPoint = Point[GlobalFrame]
	UTMPoint    = Point[UTMFrame]
	LocalPoint  = Point[LocalFrame]
)

// Bounds is a convenience bounding box in the Global frame, expressed the
// way feature sources and catalogs want it: explicit lon/lat extrema
// rather than a pair of generic Points.
type Bounds struct {
	MinLon, MaxLon float64
	MinLat, MaxLat float64
}

// Intersects reports whether two Global bounding boxes overlap.
func (b Bounds) Intersects(o Bounds) bool {
	if b.MaxLon < o.MinLon || o.MaxLon < b.MinLon {
		return false
	}
	if b.MaxLat < o.MinLat || o.MaxLat < b.MinLat {
		return false
	}
	return true
}

// Contains reports whether a lon/lat point falls within these bounds.
func (b Bounds) Contains(lon, lat float64) bool {
	return lon >= b.MinLon && lon <= b.MaxLon && lat >= b.MinLat && lat <= b.MaxLat
}

func (b Bounds) center() (lon, lat float64) {
	return (b.MinLon + b.MaxLon) / 2, (b.MinLat + b.MaxLat) / 2
}

func (b Bounds) toBoundBox() BoundBox[GlobalFrame] {
	return BoundBox[GlobalFrame]{
		Min: Point[GlobalFrame]{X: b.MinLon, Y: b.MinLat},
		Max: Point[GlobalFrame]{X: b.MaxLon, Y: b.MaxLat},
	}
}

const (
	minLocalWidth = 128.0
	maxLocalWidth = 16384.0

	// globalTolerance is the comparison tolerance for Global-frame
	// coordinates, per spec: 1e-3 degrees.
	globalTolerance = 1e-3
	// localTolerance is the comparison tolerance for Local/UTM-frame
	// coordinates, per spec: 1e-2 meters.
	localTolerance = 1e-2
)

// FrameMapping establishes the three coordinate frames a chart works in -
// Global (lat/lon, WGS-84), UTM (projected meters, fixed zone), and Local
// (meters from the southwest corner of the chart's snapped UTM bounds) -
// and maps points and polygons between them.
//
// A FrameMapping is constructed empty; MoveToCorners is called exactly
// once to fix its bounds and zone, after which it is immutable. Pinning
// the Local origin at the UTM minimum and forcing power-of-two widths lets
// every downstream layer use integer shifts and modulos for sector
// arithmetic instead of floating origin bookkeeping.
type FrameMapping struct {
	projector geo.Projector

	globalBounds Bounds
	utmBounds    BoundBox[UTMFrame]
	localWidth   float64

	zone     int
	northern bool

	ready bool
}

// NewFrameMapping constructs an empty FrameMapping using the given
// reprojection adapter. Call MoveToCorners before using it.
func NewFrameMapping(projector geo.Projector) *FrameMapping {
	return &FrameMapping{projector: projector, localWidth: minLocalWidth}
}

// MoveToCorners reprojects bounds's two corners to UTM, clamps the
// resulting span to [128, 16384] meters, rounds it up to the next power of
// two, and anchors the UTM (and hence Local) bounds at the reprojected
// minimum corner. Global bounds are recomputed by reverse-projecting the
// new UTM maximum, so the mapping always reports the actual (possibly
// larger, snapped) area it covers.
//
// Returns a non-nil error - leaving the mapping in its previous (empty)
// state - when any corner fails to reproject (*ProjectionFailureError) or
// the requested span exceeds 16384m (*OutOfRangeError).
func (m *FrameMapping) MoveToCorners(bounds Bounds) error {
	centerLon, centerLat := bounds.center()
	zone, northern := m.projector.ZoneFor(centerLon, centerLat)

	minE, minN, ok1 := m.projector.ToUTM(bounds.MinLon, bounds.MinLat, zone, northern)
	maxE, maxN, ok2 := m.projector.ToUTM(bounds.MaxLon, bounds.MaxLat, zone, northern)
	if !ok1 || !ok2 {
		return &ProjectionFailureError{Reason: "bounds corner reprojected to a non-finite UTM coordinate"}
	}

	utmMin := Point[UTMFrame]{X: math.Min(minE, maxE), Y: math.Min(minN, maxN)}
	utmMax := Point[UTMFrame]{X: math.Max(minE, maxE), Y: math.Max(minN, maxN)}

	span := math.Max(utmMax.X-utmMin.X, utmMax.Y-utmMin.Y)
	if span > maxLocalWidth {
		return &OutOfRangeError{Reason: fmt.Sprintf("bounds span %.1fm exceeds the %.0fm maximum", span, maxLocalWidth)}
	}

	side := snapPow2(span)

	squareMax := Point[UTMFrame]{X: utmMin.X + side, Y: utmMin.Y + side}

	newMaxLon, newMaxLat, ok3 := m.projector.FromUTM(squareMax.X, squareMax.Y, zone, northern)
	if !ok3 {
		return &ProjectionFailureError{Reason: "snapped UTM maximum failed to reverse-project to Global"}
	}

	m.zone = zone
	m.northern = northern
	m.utmBounds = BoundBox[UTMFrame]{Min: utmMin, Max: squareMax}
	m.localWidth = side
	m.globalBounds = Bounds{
		MinLon: bounds.MinLon,
		MinLat: bounds.MinLat,
		MaxLon: newMaxLon,
		MaxLat: newMaxLat,
	}
	m.ready = true
	return nil
}

// snapPow2 returns the smallest power of two in [128, 16384] that is >=
// span. Callers must have already rejected span > 16384.
func snapPow2(span float64) float64 {
	side := minLocalWidth
	for side < span {
		side *= 2
	}
	return side
}

// GlobalBounds returns the chart's current Global-frame coverage.
func (m *FrameMapping) GlobalBounds() Bounds {
	return m.globalBounds
}

// UTMBounds returns the chart's UTM-frame coverage (a square).
func (m *FrameMapping) UTMBounds() BoundBox[UTMFrame] {
	return m.utmBounds
}

// LocalBounds returns [0,0]..[side,side] in the Local frame.
func (m *FrameMapping) LocalBounds() BoundBox[LocalFrame] {
	return BoundBox[LocalFrame]{
		Min: Point[LocalFrame]{X: 0, Y: 0},
		Max: Point[LocalFrame]{X: m.localWidth, Y: m.localWidth},
	}
}

// Zone returns the UTM zone number and hemisphere (true=northern) chosen
// for this chart.
func (m *FrameMapping) Zone() (zone int, northern bool) {
	return m.zone, m.northern
}

// MapToUTM forward-projects a Global point into this chart's UTM zone.
func (m *FrameMapping) MapToUTM(p GlobalPoint) UTMPoint {
	e, n, ok := m.projector.ToUTM(p.X, p.Y, m.zone, m.northern)
	if !ok {
		return Point[UTMFrame]{X: math.NaN(), Y: math.NaN()}
	}
	return Point[UTMFrame]{X: e, Y: n}
}

// MapToGlobal reverse-projects a UTM point back to lon/lat.
func (m *FrameMapping) MapToGlobal(p UTMPoint) GlobalPoint {
	lon, lat, ok := m.projector.FromUTM(p.X, p.Y, m.zone, m.northern)
	if !ok {
		return Point[GlobalFrame]{X: math.NaN(), Y: math.NaN()}
	}
	return Point[GlobalFrame]{X: lon, Y: lat}
}

// MapToLocal forward-projects a Global point, then subtracts the UTM
// minimum to express it in the Local frame.
//
// On reprojection failure this returns the NaN sentinel point; callers
// must treat a NaN point as "skip this point" (see IngestFeature, which
// applies the feature-level skip-if-more-than-half-NaN rule).
func (m *FrameMapping) MapToLocal(p GlobalPoint) LocalPoint {
	utm := m.MapToUTM(p)
	if utm.IsNaN() {
		return nanPoint
	}
	return Point[LocalFrame]{X: utm.X - m.utmBounds.Min.X, Y: utm.Y - m.utmBounds.Min.Y}
}

// MapPolygonToLocal maps every vertex of a Global polygon into the Local
// frame, pointwise. The result is not completed (see Polygon.Complete);
// NaN vertices (failed reprojections) are passed through unchanged for the
// caller to filter.
func (m *FrameMapping) MapPolygonToLocal(poly Polygon[GlobalFrame]) Polygon[LocalFrame] {
	out := Polygon[LocalFrame]{vertices: make([]Point[LocalFrame], len(poly.vertices))}
	for i, v := range poly.vertices {
		out.vertices[i] = m.MapToLocal(v)
	}
	return out
}
