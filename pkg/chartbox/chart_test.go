package chartbox

import (
	"testing"

	"github.com/teyrana/chartbox/internal/geo"
)

func newTestChartBox(t *testing.T) *ChartBox {
	t.Helper()
	mapping := NewFrameMapping(geo.NewTransverseMercator())
	if err := mapping.MoveToCorners(Bounds{MinLon: -70.30, MaxLon: -70.29, MinLat: 41.20, MaxLat: 41.21}); err != nil {
		t.Fatalf("MoveToCorners failed: %v", err)
	}
	box, err := NewChartBox(mapping, 8.0, RoleBoundary, RoleContour)
	if err != nil {
		t.Fatalf("NewChartBox: %v", err)
	}
	return box
}

func TestChartBoxClassifyDominance(t *testing.T) {
	box := newTestChartBox(t)
	local := box.Mapping().LocalBounds()

	box.Layer(RoleBoundary).FillBox(local, CLEAR)

	p := Point[LocalFrame]{X: local.Width() / 2, Y: local.Height() / 2}
	if got := box.Classify(p); got != CLEAR {
		t.Fatalf("Classify before contour = %v, want CLEAR", got)
	}

	box.Layer(RoleContour).Store(p, BLOCK)
	if got := box.Classify(p); got != BLOCK {
		t.Errorf("Classify after contour BLOCK = %v, want BLOCK (dominates CLEAR)", got)
	}
}

func TestChartBoxIngestFeatureBoundaryAlwaysClear(t *testing.T) {
	box := newTestChartBox(t)
	global := box.Mapping().GlobalBounds()

	margin := 0.0001
	poly := NewPolygon([]Point[GlobalFrame]{
		{X: global.MinLon + margin, Y: global.MinLat + margin},
		{X: global.MaxLon - margin, Y: global.MinLat + margin},
		{X: global.MaxLon - margin, Y: global.MaxLat - margin},
		{X: global.MinLon + margin, Y: global.MaxLat - margin},
	})

	if err := box.IngestFeature(Feature{Role: RoleBoundary, Polygon: poly, InsideClass: BLOCK}); err != nil {
		t.Fatalf("IngestFeature: %v", err)
	}

	center := Point[LocalFrame]{X: box.Mapping().LocalBounds().Width() / 2, Y: box.Mapping().LocalBounds().Height() / 2}
	if got := box.Layer(RoleBoundary).Get(center); got != CLEAR {
		t.Errorf("boundary feature ingested with BLOCK InsideClass, got %v at center, want CLEAR", got)
	}
}

func TestChartBoxIngestFeatureSkipsMostlyNaN(t *testing.T) {
	box := newTestChartBox(t)

	poly := NewPolygon([]Point[GlobalFrame]{
		{X: 500, Y: 500}, {X: 500, Y: 501}, {X: 501, Y: 501}, {X: 501, Y: 500},
	})

	if err := box.IngestFeature(Feature{Role: RoleContour, Polygon: poly, InsideClass: BLOCK}); err != nil {
		t.Fatalf("IngestFeature should skip rather than error: %v", err)
	}
}
