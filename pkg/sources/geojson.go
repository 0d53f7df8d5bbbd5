// Package sources provides concrete chartbox.FeatureSource adapters:
// GeoJSONSource reads GeoJSON feature collections, ShapefileSource reads
// ESRI shapefiles.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/teyrana/chartbox/pkg/chartbox"
)

// GeoJSONSource reads polygon features from a GeoJSON FeatureCollection
// file. Each feature's role and inside-classification are read from its
// Properties map, under configurable keys (RoleKey, InsideKey), defaulting
// to "role" and "block".
//
// A feature is treated as RoleBoundary if its role property equals
// "boundary" (case-sensitive), and RoleContour otherwise. InsideKey's
// value is interpreted as a boolean: true means the polygon's interior is
// BLOCK (land), false means CLEAR (water inside land) - matching the
// Feature source interface's BOUNDARY/CONTOUR semantics.
type GeoJSONSource struct {
	Path      string
	RoleKey   string
	InsideKey string
}

// NewGeoJSONSource returns a GeoJSONSource over path with the default
// property keys.
func NewGeoJSONSource(path string) *GeoJSONSource {
	return &GeoJSONSource{Path: path, RoleKey: "role", InsideKey: "block"}
}

func (s *GeoJSONSource) roleKey() string {
	if s.RoleKey != "" {
		return s.RoleKey
	}
	return "role"
}

func (s *GeoJSONSource) insideKey() string {
	if s.InsideKey != "" {
		return s.InsideKey
	}
	return "block"
}

func (s *GeoJSONSource) load() (*geojson.FeatureCollection, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &chartbox.IoError{Path: s.Path, Err: err}
	}
	fc := geojson.NewFeatureCollection()
	if err := json.Unmarshal(raw, fc); err != nil {
		return nil, &chartbox.IoError{Path: s.Path, Err: err}
	}
	return fc, nil
}

// Bounds implements chartbox.FeatureSource: the union bounding box of
// every feature's geometry in the file.
func (s *GeoJSONSource) Bounds(ctx context.Context) (chartbox.Bounds, error) {
	fc, err := s.load()
	if err != nil {
		return chartbox.Bounds{}, err
	}
	if len(fc.Features) == 0 {
		return chartbox.Bounds{}, &chartbox.InvalidGeometryError{Reason: "GeoJSON file contains no features"}
	}

	var bound orb.Bound
	first := true
	for _, f := range fc.Features {
		b := f.Geometry.Bound()
		if first {
			bound = b
			first = false
		} else {
			bound = bound.Union(b)
		}
	}

	return chartbox.Bounds{
		MinLon: bound.Min.Lon(), MaxLon: bound.Max.Lon(),
		MinLat: bound.Min.Lat(), MaxLat: bound.Max.Lat(),
	}, nil
}

// Features implements chartbox.FeatureSource.
func (s *GeoJSONSource) Features(ctx context.Context, fn func(chartbox.Feature) error) error {
	fc, err := s.load()
	if err != nil {
		return err
	}

	for _, f := range fc.Features {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		role := chartbox.RoleContour
		if roleVal, _ := f.Properties[s.roleKey()].(string); roleVal == "boundary" {
			role = chartbox.RoleBoundary
		}

		inside := false
		if v, ok := f.Properties[s.insideKey()]; ok {
			inside, _ = v.(bool)
		}
		insideClass := chartbox.CLEAR
		if inside {
			insideClass = chartbox.BLOCK
		}

		rings, err := polygonRings(f.Geometry)
		if err != nil {
			return fmt.Errorf("feature geometry: %w", err)
		}
		for _, ring := range rings {
			poly := chartbox.NewPolygon(ringToPoints(ring))
			if err := fn(chartbox.Feature{Role: role, Polygon: poly, InsideClass: insideClass}); err != nil {
				return err
			}
		}
	}
	return nil
}

// polygonRings extracts the outer rings of a geometry as orb.Rings,
// flattening MultiPolygon into one ring per constituent polygon's
// exterior. Holes are not separately represented here - a hole is just
// another CONTOUR feature with InsideClass=CLEAR in practice.
func polygonRings(g orb.Geometry) ([]orb.Ring, error) {
	switch geom := g.(type) {
	case orb.Polygon:
		if len(geom) == 0 {
			return nil, fmt.Errorf("polygon has no rings")
		}
		return []orb.Ring{geom[0]}, nil
	case orb.MultiPolygon:
		rings := make([]orb.Ring, 0, len(geom))
		for _, p := range geom {
			if len(p) > 0 {
				rings = append(rings, p[0])
			}
		}
		return rings, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type %T", g)
	}
}

func ringToPoints(ring orb.Ring) []chartbox.Point[chartbox.GlobalFrame] {
	pts := make([]chartbox.Point[chartbox.GlobalFrame], len(ring))
	for i, p := range ring {
		pts[i] = chartbox.Point[chartbox.GlobalFrame]{X: p.X(), Y: p.Y()}
	}
	return pts
}

var _ chartbox.FeatureSource = (*GeoJSONSource)(nil)
