package chartbox

import "math"

// BoundBox is an axis-aligned bounding box tagged with a coordinate frame.
type BoundBox[F any] struct {
	Min, Max Point[F]
}

// Width returns Max.X - Min.X.
func (b BoundBox[F]) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns Max.Y - Min.Y.
func (b BoundBox[F]) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// IsSquare reports whether Width and Height agree to within localTolerance.
func (b BoundBox[F]) IsSquare() bool {
	return math.Abs(b.Width()-b.Height()) <= localTolerance
}

// ContainsPoint reports whether p falls within the box, inclusive of edges.
func (b BoundBox[F]) ContainsPoint(p Point[F]) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Contains reports whether o is entirely within b.
func (b BoundBox[F]) Contains(o BoundBox[F]) bool {
	return o.Min.X >= b.Min.X && o.Max.X <= b.Max.X &&
		o.Min.Y >= b.Min.Y && o.Max.Y <= b.Max.Y
}

// Overlaps reports whether b and o share any area.
func (b BoundBox[F]) Overlaps(o BoundBox[F]) bool {
	if b.Max.X < o.Min.X || o.Max.X < b.Min.X {
		return false
	}
	if b.Max.Y < o.Min.Y || o.Max.Y < b.Min.Y {
		return false
	}
	return true
}

// Grow expands the box, if needed, to include p. A zero-value BoundBox
// (Min == Max == origin) is treated as empty; the first Grow call seeds
// both corners at p rather than taking the min/max against the origin.
func (b BoundBox[F]) Grow(p Point[F]) BoundBox[F] {
	if b == (BoundBox[F]{}) {
		return BoundBox[F]{Min: p, Max: p}
	}
	return BoundBox[F]{
		Min: Point[F]{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y)},
		Max: Point[F]{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y)},
	}
}

// Snap rounds b's minimum corner down to the nearest multiple of interval,
// and returns a box anchored there with the given side length.
// RollingGridLayer.View uses it to align its window to the sector grid.
func (b BoundBox[F]) Snap(interval, newSize float64) BoundBox[F] {
	snappedX := math.Floor(b.Min.X/interval) * interval
	snappedY := math.Floor(b.Min.Y/interval) * interval
	min := Point[F]{X: snappedX, Y: snappedY}
	return BoundBox[F]{Min: min, Max: Point[F]{X: min.X + newSize, Y: min.Y + newSize}}
}

// Polygon is a closed ring of vertices tagged with a coordinate frame.
// Vertices are stored as given until Complete, which enforces a minimum
// vertex count and a consistent winding order and stores the ring closed
// (last vertex repeating the first).
type Polygon[F any] struct {
	vertices []Point[F]
	bounds   BoundBox[F]
	complete bool
}

// NewPolygon constructs a Polygon from the given vertices. The polygon is
// not completed; call Complete before using Bounds or Overlaps.
func NewPolygon[F any](vertices []Point[F]) Polygon[F] {
	return Polygon[F]{vertices: append([]Point[F](nil), vertices...)}
}

// Vertices returns the polygon's vertex slice. Callers must not mutate it.
func (p *Polygon[F]) Vertices() []Point[F] {
	return p.vertices
}

// Complete enforces the closed-ring invariant (first vertex equals last),
// validates the polygon has at least 3 distinct vertices (4 once closed),
// computes and caches its bounding box, and enforces counter-clockwise
// winding by reversing the vertex order if the signed area (shoelace
// formula) is negative. It is idempotent: calling it again on an
// already-completed polygon is a no-op.
func (p *Polygon[F]) Complete() error {
	if p.complete {
		return nil
	}

	ring := p.vertices
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	if len(ring) < 3 {
		return &InvalidGeometryError{Reason: "polygon needs at least 4 vertices once closed"}
	}

	if signedArea(ring) < 0 {
		reverse(ring)
	}

	var bounds BoundBox[F]
	for _, v := range ring {
		bounds = bounds.Grow(v)
	}

	p.vertices = append(append([]Point[F](nil), ring...), ring[0])
	p.bounds = bounds
	p.complete = true
	return nil
}

// Bounds returns the polygon's cached bounding box. Valid only after
// Complete has succeeded.
func (p *Polygon[F]) Bounds() BoundBox[F] {
	return p.bounds
}

// Overlaps performs a cheap bounding-box-only overlap test against another
// completed polygon; it is not an exact polygon/polygon intersection test.
func (p *Polygon[F]) Overlaps(o *Polygon[F]) bool {
	return p.bounds.Overlaps(o.bounds)
}

func signedArea[F any](vertices []Point[F]) float64 {
	var sum float64
	n := len(vertices)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += vertices[i].X*vertices[j].Y - vertices[j].X*vertices[i].Y
	}
	return sum / 2
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Path is an open sequence of vertices, used for planner output and for
// rasterizing line features (as opposed to filled areas).
type Path[F any] struct {
	vertices []Point[F]
}

// NewPath constructs a Path from the given vertices.
func NewPath[F any](vertices []Point[F]) Path[F] {
	return Path[F]{vertices: append([]Point[F](nil), vertices...)}
}

// Vertices returns the path's vertex slice. Callers must not mutate it.
func (p *Path[F]) Vertices() []Point[F] {
	return p.vertices
}

// Length returns the sum of Euclidean distances between consecutive
// vertices.
func (p *Path[F]) Length() float64 {
	var total float64
	for i := 1; i < len(p.vertices); i++ {
		dx := p.vertices[i].X - p.vertices[i-1].X
		dy := p.vertices[i].Y - p.vertices[i-1].Y
		total += math.Hypot(dx, dy)
	}
	return total
}
