package chartbox

import "context"

// ChartBox owns one FrameMapping and one StaticGridLayer per semantic
// role (boundary, contour, ...). Classify composites the layers: the
// maximum cell value across all roles wins, so BLOCK in any layer
// dominates UNKNOWN, which in turn dominates CLEAR.
type ChartBox struct {
	mapping *FrameMapping
	layers  map[Role]*StaticGridLayer
}

// NewChartBox constructs a ChartBox over an already-positioned
// FrameMapping (MoveToCorners must already have succeeded), with one
// StaticGridLayer per role allocated over mapping.LocalBounds() at the
// given precision.
//
// Every role but RoleBoundary starts baselined to CLEAR rather than the
// layer's own UNKNOWN default: a contour (or similar) layer only ever
// rasterizes the specific hazard polygons a source yields, never the
// full extent, so its untouched cells must read as "known clear", not
// "unknown" - otherwise Classify's dominance would report UNKNOWN for
// every point the contour layer hasn't explicitly touched, even where
// the boundary layer has already asserted CLEAR. RoleBoundary keeps the
// UNKNOWN default: it marks the surveyed extent itself, so anything
// outside the boundary polygon it eventually ingests is correctly
// "not yet known to be navigable".
func NewChartBox(mapping *FrameMapping, precision float64, roles ...Role) (*ChartBox, error) {
	box := &ChartBox{mapping: mapping, layers: make(map[Role]*StaticGridLayer, len(roles))}
	for _, role := range roles {
		layer, err := NewStaticGridLayer(mapping.LocalBounds(), precision)
		if err != nil {
			return nil, err
		}
		if role != RoleBoundary {
			layer.Fill(CLEAR)
		}
		box.layers[role] = layer
	}
	return box, nil
}

// Mapping exposes the chart's FrameMapping. Callers convert Global
// coordinates through Mapping().MapToLocal before calling Classify.
func (b *ChartBox) Mapping() *FrameMapping {
	return b.mapping
}

// Layer returns the StaticGridLayer for the given role, or nil if the
// chart was not constructed with that role.
func (b *ChartBox) Layer(role Role) *StaticGridLayer {
	return b.layers[role]
}

// Classify returns the maximum cell value across every role's layer at p:
// any layer asserting BLOCK dominates UNKNOWN, which dominates CLEAR.
func (b *ChartBox) Classify(p Point[LocalFrame]) Cell {
	result := CLEAR
	for _, layer := range b.layers {
		result = dominates(result, layer.Get(p))
	}
	return result
}

// IngestFeature projects a Feature's Global-frame polygon into this
// chart's Local frame and rasterizes it into the matching role's layer.
// BOUNDARY features always fill CLEAR (the navigable region) regardless
// of InsideClass; CONTOUR features fill their declared InsideClass.
//
// A feature whose vertices are more than half NaN (failed reprojections,
// e.g. a polygon straddling a UTM zone boundary) is skipped entirely
// rather than rasterized with gaps; otherwise its NaN vertices are dropped
// and the remaining ones are rasterized.
func (b *ChartBox) IngestFeature(f Feature) error {
	layer, ok := b.layers[f.Role]
	if !ok {
		return nil
	}

	local := b.mapping.MapPolygonToLocal(f.Polygon)

	nanCount := 0
	kept := make([]Point[LocalFrame], 0, len(local.vertices))
	for _, v := range local.vertices {
		if v.IsNaN() {
			nanCount++
			continue
		}
		kept = append(kept, v)
	}
	if len(local.vertices) == 0 || nanCount*2 > len(local.vertices) {
		return nil
	}
	local.vertices = kept

	if err := local.Complete(); err != nil {
		return err
	}

	fillValue := f.InsideClass
	if f.Role == RoleBoundary {
		fillValue = CLEAR
	}
	layer.FillPolygon(&local, fillValue)
	return nil
}

// IngestSource drains a FeatureSource into this chart: every feature it
// yields is ingested via IngestFeature. The source's own Bounds() is not
// consulted here - callers use it earlier, to size the FrameMapping via
// MoveToCorners, before constructing the ChartBox.
func (b *ChartBox) IngestSource(ctx context.Context, src FeatureSource) error {
	return src.Features(ctx, func(f Feature) error {
		return b.IngestFeature(f)
	})
}
