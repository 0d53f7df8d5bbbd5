package geo

import (
	"math"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	p := NewTransverseMercator()

	cases := []struct{ lon, lat float64 }{
		{-70.25, 41.25},
		{-122.4, 37.8},
		{2.35, 48.85},
		{139.7, 35.7},
	}

	for _, c := range cases {
		zone, northern := p.ZoneFor(c.lon, c.lat)
		e, n, ok := p.ToUTM(c.lon, c.lat, zone, northern)
		if !ok {
			t.Fatalf("ToUTM(%v,%v) failed", c.lon, c.lat)
		}

		lon, lat, ok := p.FromUTM(e, n, zone, northern)
		if !ok {
			t.Fatalf("FromUTM failed for %v,%v", c.lon, c.lat)
		}

		if math.Abs(lon-c.lon) > 1e-3 {
			t.Errorf("lon round-trip: got %v, want %v", lon, c.lon)
		}
		if math.Abs(lat-c.lat) > 1e-3 {
			t.Errorf("lat round-trip: got %v, want %v", lat, c.lat)
		}
	}
}

func TestZoneFor(t *testing.T) {
	p := NewTransverseMercator()

	zone, northern := p.ZoneFor(-70.25, 41.25)
	if zone != 19 || !northern {
		t.Errorf("expected zone 19N, got %d north=%v", zone, northern)
	}

	zone, northern = p.ZoneFor(151.2, -33.8)
	if zone != 56 || northern {
		t.Errorf("expected zone 56S, got %d north=%v", zone, northern)
	}
}

func TestToUTMRejectsOutOfRange(t *testing.T) {
	p := NewTransverseMercator()
	if _, _, ok := p.ToUTM(200, 0, 1, true); ok {
		t.Error("expected failure for out-of-range longitude")
	}
	if _, _, ok := p.ToUTM(0, 95, 1, true); ok {
		t.Error("expected failure for out-of-range latitude")
	}
}
