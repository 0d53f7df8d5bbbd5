package sources

import (
	"context"
	"fmt"

	"github.com/jonas-p/go-shp"

	"github.com/teyrana/chartbox/pkg/chartbox"
)

// ShapefileSource reads polygon features from an ESRI shapefile (.shp +
// matching .dbf). Role and inside-classification are read from the DBF
// attribute columns named RoleField and InsideField, defaulting to "role"
// and "block", with the same interpretation as GeoJSONSource.
type ShapefileSource struct {
	Path        string
	RoleField   string
	InsideField string
}

// NewShapefileSource returns a ShapefileSource over path with the default
// attribute field names.
func NewShapefileSource(path string) *ShapefileSource {
	return &ShapefileSource{Path: path, RoleField: "role", InsideField: "block"}
}

func (s *ShapefileSource) roleField() string {
	if s.RoleField != "" {
		return s.RoleField
	}
	return "role"
}

func (s *ShapefileSource) insideField() string {
	if s.InsideField != "" {
		return s.InsideField
	}
	return "block"
}

func (s *ShapefileSource) open() (*shp.Reader, error) {
	r, err := shp.Open(s.Path)
	if err != nil {
		return nil, &chartbox.IoError{Path: s.Path, Err: err}
	}
	return r, nil
}

func (s *ShapefileSource) fieldIndex(r *shp.Reader, name string) int {
	for i, f := range r.Fields() {
		if f.String() == name {
			return i
		}
	}
	return -1
}

// Bounds implements chartbox.FeatureSource, reading the shapefile's
// header bounding box directly rather than scanning every shape.
func (s *ShapefileSource) Bounds(ctx context.Context) (chartbox.Bounds, error) {
	r, err := s.open()
	if err != nil {
		return chartbox.Bounds{}, err
	}
	defer r.Close()

	box := r.BBox()
	return chartbox.Bounds{
		MinLon: box.MinX, MaxLon: box.MaxX,
		MinLat: box.MinY, MaxLat: box.MaxY,
	}, nil
}

// Features implements chartbox.FeatureSource. A shapefile polygon shape
// may encode several rings via Parts; each ring becomes its own Feature
// (holes are not distinguished from disjoint exterior rings; GeoJSONSource,
// by contrast, keeps only each polygon's exterior ring).
func (s *ShapefileSource) Features(ctx context.Context, fn func(chartbox.Feature) error) error {
	r, err := s.open()
	if err != nil {
		return err
	}
	defer r.Close()

	roleIdx := s.fieldIndex(r, s.roleField())
	insideIdx := s.fieldIndex(r, s.insideField())

	for r.Next() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		idx, shape := r.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			return fmt.Errorf("unsupported shape type %T at record %d", shape, idx)
		}

		role := chartbox.RoleContour
		if roleIdx >= 0 && r.ReadAttribute(idx, roleIdx) == "boundary" {
			role = chartbox.RoleBoundary
		}
		insideClass := chartbox.CLEAR
		if insideIdx >= 0 && r.ReadAttribute(idx, insideIdx) == "true" {
			insideClass = chartbox.BLOCK
		}

		for _, ring := range splitParts(poly) {
			if len(ring) < 3 {
				continue
			}
			p := chartbox.NewPolygon(ring)
			if err := fn(chartbox.Feature{Role: role, Polygon: p, InsideClass: insideClass}); err != nil {
				return err
			}
		}
	}
	return nil
}

// splitParts breaks a shp.Polygon's flat Points array into one ring per
// entry in Parts.
func splitParts(poly *shp.Polygon) [][]chartbox.Point[chartbox.GlobalFrame] {
	n := len(poly.Parts)
	if n == 0 {
		return nil
	}
	rings := make([][]chartbox.Point[chartbox.GlobalFrame], 0, n)
	for i := 0; i < n; i++ {
		start := int(poly.Parts[i])
		end := len(poly.Points)
		if i+1 < n {
			end = int(poly.Parts[i+1])
		}
		ring := make([]chartbox.Point[chartbox.GlobalFrame], 0, end-start)
		for _, pt := range poly.Points[start:end] {
			ring = append(ring, chartbox.Point[chartbox.GlobalFrame]{X: pt.X, Y: pt.Y})
		}
		rings = append(rings, ring)
	}
	return rings
}

var _ chartbox.FeatureSource = (*ShapefileSource)(nil)
