package chartbox

import (
	"testing"

	"github.com/teyrana/chartbox/internal/geo"
)

func TestMoveToCornersSnapsToPowerOfTwo(t *testing.T) {
	m := NewFrameMapping(geo.NewTransverseMercator())
	if err := m.MoveToCorners(Bounds{MinLon: -70.30, MaxLon: -70.29, MinLat: 41.20, MaxLat: 41.21}); err != nil {
		t.Fatalf("expected MoveToCorners to succeed: %v", err)
	}

	local := m.LocalBounds()
	side := local.Width()
	if side < minLocalWidth || side > maxLocalWidth {
		t.Errorf("local width %v out of [%v,%v]", side, minLocalWidth, maxLocalWidth)
	}
	// must be a power of two
	n := side
	for n > minLocalWidth {
		if int(n)%2 != 0 {
			t.Fatalf("local width %v is not a power of two", side)
		}
		n /= 2
	}

	if !local.IsSquare() {
		t.Errorf("expected square local bounds, got %+v", local)
	}
}

func TestMoveToCornersRejectsOversizedSpan(t *testing.T) {
	m := NewFrameMapping(geo.NewTransverseMercator())
	err := m.MoveToCorners(Bounds{MinLon: -75, MaxLon: -70, MinLat: 35, MaxLat: 45})
	if err == nil {
		t.Fatal("expected MoveToCorners to reject a span far over 16384m")
	}
	if _, ok := err.(*OutOfRangeError); !ok {
		t.Errorf("expected *OutOfRangeError, got %T", err)
	}
}

func TestMoveToCornersReportsProjectionFailure(t *testing.T) {
	m := NewFrameMapping(geo.NewTransverseMercator())
	err := m.MoveToCorners(Bounds{MinLon: -70.30, MaxLon: -70.29, MinLat: 500, MaxLat: 500.01})
	if err == nil {
		t.Fatal("expected MoveToCorners to reject an out-of-range latitude")
	}
	if _, ok := err.(*ProjectionFailureError); !ok {
		t.Errorf("expected *ProjectionFailureError, got %T", err)
	}
}

func TestMapToLocalLandsInsideLocalBounds(t *testing.T) {
	m := NewFrameMapping(geo.NewTransverseMercator())
	if err := m.MoveToCorners(Bounds{MinLon: -70.30, MaxLon: -70.29, MinLat: 41.20, MaxLat: 41.21}); err != nil {
		t.Fatalf("MoveToCorners failed: %v", err)
	}

	global := GlobalPoint{X: -70.295, Y: 41.205}
	local := m.MapToLocal(global)
	if local.IsNaN() {
		t.Fatal("unexpected NaN from MapToLocal")
	}

	bounds := m.LocalBounds()
	if !bounds.ContainsPoint(local) {
		t.Errorf("mapped local point %+v outside local bounds %+v", local, bounds)
	}
}

func TestMapToLocalNaNOnProjectionFailure(t *testing.T) {
	m := NewFrameMapping(geo.NewTransverseMercator())
	if err := m.MoveToCorners(Bounds{MinLon: -70.30, MaxLon: -70.29, MinLat: 41.20, MaxLat: 41.21}); err != nil {
		t.Fatalf("MoveToCorners failed: %v", err)
	}

	bad := GlobalPoint{X: 500, Y: 500}
	local := m.MapToLocal(bad)
	if !local.IsNaN() {
		t.Error("expected NaN sentinel for out-of-range projection input")
	}
}

func TestBoundsIntersects(t *testing.T) {
	a := Bounds{MinLon: -71, MaxLon: -70, MinLat: 41, MaxLat: 42}
	b := Bounds{MinLon: -70.5, MaxLon: -69.5, MinLat: 41.5, MaxLat: 42.5}
	c := Bounds{MinLon: 10, MaxLon: 11, MinLat: 10, MaxLat: 11}

	if !a.Intersects(b) {
		t.Error("expected a and b to intersect")
	}
	if a.Intersects(c) {
		t.Error("expected a and c not to intersect")
	}
}
