package chartbox

import "testing"

func TestPolygonCompleteEnforcesCCW(t *testing.T) {
	// clockwise square
	cw := NewPolygon([]Point[LocalFrame]{
		{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0},
	})
	if err := cw.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if signedArea(cw.vertices) < 0 {
		t.Errorf("expected CCW winding after Complete, got signed area %v", signedArea(cw.vertices))
	}

	// already-CCW square should be unaffected
	ccw := NewPolygon([]Point[LocalFrame]{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	})
	if err := ccw.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if signedArea(ccw.vertices) < 0 {
		t.Errorf("expected CCW winding preserved, got signed area %v", signedArea(ccw.vertices))
	}
}

func TestPolygonCompleteClosesRing(t *testing.T) {
	p := NewPolygon([]Point[LocalFrame]{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	})
	if err := p.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	verts := p.Vertices()
	if len(verts) != 5 {
		t.Fatalf("expected 5 vertices after closing a 4-vertex ring, got %d", len(verts))
	}
	if verts[0] != verts[len(verts)-1] {
		t.Errorf("expected first vertex to equal last, got %+v != %+v", verts[0], verts[len(verts)-1])
	}
}

func TestPolygonCompleteRejectsDegenerate(t *testing.T) {
	p := NewPolygon([]Point[LocalFrame]{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err := p.Complete(); err == nil {
		t.Error("expected error for 2-vertex polygon")
	}
}

func TestPolygonCompleteIdempotent(t *testing.T) {
	p := NewPolygon([]Point[LocalFrame]{
		{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0},
	})
	if err := p.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	first := append([]Point[LocalFrame](nil), p.vertices...)
	if err := p.Complete(); err != nil {
		t.Fatalf("second Complete: %v", err)
	}
	for i := range first {
		if first[i] != p.vertices[i] {
			t.Errorf("Complete was not idempotent at vertex %d", i)
		}
	}
}

func TestPolygonBoundsAndOverlaps(t *testing.T) {
	a := NewPolygon([]Point[LocalFrame]{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	})
	b := NewPolygon([]Point[LocalFrame]{
		{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 15}, {X: 5, Y: 15},
	})
	c := NewPolygon([]Point[LocalFrame]{
		{X: 100, Y: 100}, {X: 110, Y: 100}, {X: 110, Y: 110}, {X: 100, Y: 110},
	})
	if err := a.Complete(); err != nil {
		t.Fatal(err)
	}
	if err := b.Complete(); err != nil {
		t.Fatal(err)
	}
	if err := c.Complete(); err != nil {
		t.Fatal(err)
	}

	if !a.Overlaps(&b) {
		t.Error("expected a and b to overlap")
	}
	if a.Overlaps(&c) {
		t.Error("expected a and c not to overlap")
	}

	bounds := a.Bounds()
	if bounds.Width() != 10 || bounds.Height() != 10 {
		t.Errorf("unexpected bounds: %+v", bounds)
	}
}

func TestPathLength(t *testing.T) {
	p := NewPath([]Point[LocalFrame]{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 0}})
	if got, want := p.Length(), 9.0; got != want {
		t.Errorf("Length() = %v, want %v", got, want)
	}
}

func TestBoundBoxGrowAndContains(t *testing.T) {
	var b BoundBox[LocalFrame]
	b = b.Grow(Point[LocalFrame]{X: 5, Y: 5})
	b = b.Grow(Point[LocalFrame]{X: -5, Y: 10})

	if b.Min.X != -5 || b.Min.Y != 5 || b.Max.X != 5 || b.Max.Y != 10 {
		t.Errorf("unexpected grown bounds: %+v", b)
	}
	if !b.ContainsPoint(Point[LocalFrame]{X: 0, Y: 7}) {
		t.Error("expected point inside bounds to be contained")
	}
	if b.ContainsPoint(Point[LocalFrame]{X: 100, Y: 7}) {
		t.Error("expected far point not to be contained")
	}
}

func TestBoundBoxSnap(t *testing.T) {
	b := BoundBox[UTMFrame]{
		Min: Point[UTMFrame]{X: 401234, Y: 4567890},
		Max: Point[UTMFrame]{X: 402000, Y: 4568000},
	}
	snapped := b.Snap(1000, 2048)
	if snapped.Min.X != 401000 || snapped.Min.Y != 4567000 {
		t.Errorf("unexpected snapped min: %+v", snapped.Min)
	}
	if !snapped.IsSquare() {
		t.Errorf("expected square box, got %+v", snapped)
	}
}
