package chartbox

import "testing"

func TestRollingGridScrollEvictsAndRestores(t *testing.T) {
	tracked := BoundBox[LocalFrame]{
		Min: Point[LocalFrame]{X: 0, Y: 0},
		Max: Point[LocalFrame]{X: 48, Y: 48},
	}
	l, err := NewRollingGridLayer(tracked, 4, 3, 1.0, t.TempDir())
	if err != nil {
		t.Fatalf("NewRollingGridLayer: %v", err)
	}

	p := Point[LocalFrame]{X: 2.5, Y: 2.5}
	if ok := l.Store(p, Cell(0x11)); !ok {
		t.Fatal("expected Store to succeed within initial view")
	}
	if got := l.Get(p); got != Cell(0x11) {
		t.Fatalf("Get after Store = %v, want 0x11", got)
	}

	if err := l.ScrollEast(); err != nil {
		t.Fatalf("ScrollEast: %v", err)
	}
	if got := l.Get(p); got != UNKNOWN {
		t.Errorf("Get after scrolling east (p now out of view) = %v, want UNKNOWN", got)
	}

	if err := l.ScrollWest(); err != nil {
		t.Fatalf("ScrollWest: %v", err)
	}
	if got := l.Get(p); got != Cell(0x11) {
		t.Errorf("Get after scrolling back west = %v, want 0x11 (restored from cache slot)", got)
	}
}

func TestRollingGridScrollRejectsLeavingTrackedBounds(t *testing.T) {
	tracked := BoundBox[LocalFrame]{
		Min: Point[LocalFrame]{X: 0, Y: 0},
		Max: Point[LocalFrame]{X: 12, Y: 12},
	}
	l, err := NewRollingGridLayer(tracked, 4, 3, 1.0, "")
	if err != nil {
		t.Fatalf("NewRollingGridLayer: %v", err)
	}
	if err := l.ScrollEast(); err == nil {
		t.Error("expected ScrollEast to fail when view already fills tracked bounds")
	}
}

func TestRollingGridDiskCacheRoundTrip(t *testing.T) {
	tracked := BoundBox[LocalFrame]{
		Min: Point[LocalFrame]{X: 0, Y: 0},
		Max: Point[LocalFrame]{X: 48, Y: 48},
	}
	cacheDir := t.TempDir()
	l, err := NewRollingGridLayer(tracked, 4, 3, 1.0, cacheDir)
	if err != nil {
		t.Fatalf("NewRollingGridLayer: %v", err)
	}

	p := Point[LocalFrame]{X: 2.5, Y: 2.5}
	l.Store(p, BLOCK)

	if err := l.ScrollEast(); err != nil {
		t.Fatalf("ScrollEast: %v", err)
	}

	// A fresh layer over the same tracked bounds and cache dir starts with
	// its view over the saved sector, so it loads it at construction.
	l2, err := NewRollingGridLayer(tracked, 4, 3, 1.0, cacheDir)
	if err != nil {
		t.Fatalf("second NewRollingGridLayer: %v", err)
	}
	if got := l2.Get(p); got != BLOCK {
		t.Errorf("Get from freshly constructed layer over same cache = %v, want BLOCK", got)
	}
}

func TestRollingGridFillPolygon(t *testing.T) {
	tracked := BoundBox[LocalFrame]{
		Min: Point[LocalFrame]{X: 0, Y: 0},
		Max: Point[LocalFrame]{X: 12, Y: 12},
	}
	l, err := NewRollingGridLayer(tracked, 4, 3, 1.0, "")
	if err != nil {
		t.Fatalf("NewRollingGridLayer: %v", err)
	}

	poly := NewPolygon([]Point[LocalFrame]{
		{X: 1, Y: 1}, {X: 10, Y: 1}, {X: 10, Y: 10}, {X: 1, Y: 10},
	})
	if err := poly.Complete(); err != nil {
		t.Fatal(err)
	}
	l.FillPolygon(&poly, CLEAR)

	if got := l.Get(Point[LocalFrame]{X: 5, Y: 5}); got != CLEAR {
		t.Errorf("Get inside filled polygon = %v, want CLEAR", got)
	}
}
