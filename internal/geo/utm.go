// Package geo implements the one geodetic capability chartbox needs from an
// external reprojection library: WGS-84 lon/lat <-> UTM easting/northing.
//
// chartbox.FrameMapping depends only on the Projector interface; this file
// is the default, process-local implementation of it. No global state is
// configured here - unlike a GDAL/PROJ binding, there is no resource
// directory to initialize before first use.
package geo

import "math"

// WGS-84 ellipsoid constants.
const (
	semiMajorAxis = 6378137.0
	flattening    = 1.0 / 298.257223563
)

const (
	utmScaleFactor  = 0.9996
	falseEasting    = 500000.0
	falseNorthingS  = 10000000.0
	zoneWidthDeg    = 6.0
)

// Projector converts between WGS-84 geographic coordinates and a projected
// UTM zone. A failed conversion (non-finite input or output) reports
// ok=false rather than returning NaN - chartbox.FrameMapping is the only
// place a NaN sentinel is allowed to appear, and only for the map-to-local
// contract spec.md defines.
type Projector interface {
	ToUTM(lon, lat float64, zone int, northern bool) (easting, northing float64, ok bool)
	FromUTM(easting, northing float64, zone int, northern bool) (lon, lat float64, ok bool)
	ZoneFor(lon, lat float64) (zone int, northern bool)
}

// TransverseMercator is the default Projector, using the standard forward
// and inverse transverse Mercator series on the WGS-84 ellipsoid.
type TransverseMercator struct{}

// NewTransverseMercator returns the default projector.
func NewTransverseMercator() TransverseMercator {
	return TransverseMercator{}
}

// ZoneFor returns the UTM zone and hemisphere a point falls in.
func (TransverseMercator) ZoneFor(lon, lat float64) (zone int, northern bool) {
	zone = int(math.Floor((lon+180.0)/zoneWidthDeg)) + 1
	if zone < 1 {
		zone = 1
	}
	if zone > 60 {
		zone = 60
	}
	return zone, lat >= 0
}

// ToUTM projects a WGS-84 lon/lat pair into the given UTM zone.
func (TransverseMercator) ToUTM(lon, lat float64, zone int, northern bool) (float64, float64, bool) {
	if !isFinite(lon) || !isFinite(lat) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}

	a := semiMajorAxis
	f := flattening
	e2 := f * (2 - f)
	ep2 := e2 / (1 - e2)

	latRad := lat * math.Pi / 180.0
	lonRad := lon * math.Pi / 180.0
	lonOrigin := float64((zone-1)*6-180+3) * math.Pi / 180.0

	n := a / math.Sqrt(1-e2*math.Sin(latRad)*math.Sin(latRad))
	t := math.Tan(latRad) * math.Tan(latRad)
	c := ep2 * math.Cos(latRad) * math.Cos(latRad)
	aCoef := math.Cos(latRad) * (lonRad - lonOrigin)

	m := a * ((1-e2/4-3*e2*e2/64-5*e2*e2*e2/256)*latRad -
		(3*e2/8+3*e2*e2/32+45*e2*e2*e2/1024)*math.Sin(2*latRad) +
		(15*e2*e2/256+45*e2*e2*e2/1024)*math.Sin(4*latRad) -
		(35*e2*e2*e2/3072)*math.Sin(6*latRad))

	easting := utmScaleFactor*n*(aCoef+(1-t+c)*aCoef*aCoef*aCoef/6+
		(5-18*t+t*t+72*c-58*ep2)*aCoef*aCoef*aCoef*aCoef*aCoef/120) + falseEasting

	northing := utmScaleFactor * (m + n*math.Tan(latRad)*(aCoef*aCoef/2+
		(5-t+9*c+4*c*c)*aCoef*aCoef*aCoef*aCoef/24+
		(61-58*t+t*t+600*c-330*ep2)*aCoef*aCoef*aCoef*aCoef*aCoef*aCoef/720))

	if !northern {
		northing += falseNorthingS
	}

	if !isFinite(easting) || !isFinite(northing) {
		return 0, 0, false
	}
	return easting, northing, true
}

// FromUTM inverse-projects a UTM easting/northing pair back to WGS-84 lon/lat.
func (TransverseMercator) FromUTM(easting, northing float64, zone int, northern bool) (float64, float64, bool) {
	if !isFinite(easting) || !isFinite(northing) {
		return 0, 0, false
	}

	a := semiMajorAxis
	f := flattening
	e2 := f * (2 - f)
	ep2 := e2 / (1 - e2)
	e1 := (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))

	x := easting - falseEasting
	y := northing
	if !northern {
		y -= falseNorthingS
	}

	m := y / utmScaleFactor
	mu := m / (a * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256))

	phi1 := mu + (3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu) +
		(1097*e1*e1*e1*e1/512)*math.Sin(8*mu)

	n1 := a / math.Sqrt(1-e2*math.Sin(phi1)*math.Sin(phi1))
	t1 := math.Tan(phi1) * math.Tan(phi1)
	c1 := ep2 * math.Cos(phi1) * math.Cos(phi1)
	r1 := a * (1 - e2) / math.Pow(1-e2*math.Sin(phi1)*math.Sin(phi1), 1.5)
	d := x / (n1 * utmScaleFactor)

	lat := phi1 - (n1*math.Tan(phi1)/r1)*(d*d/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*d*d*d*d/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*d*d*d*d*d*d/720)

	lon := (d - (1+2*t1+c1)*d*d*d/6 +
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*d*d*d*d*d/120) / math.Cos(phi1)

	lonOrigin := float64((zone-1)*6-180+3) * math.Pi / 180.0

	latDeg := lat * 180.0 / math.Pi
	lonDeg := lonOrigin*180.0/math.Pi + lon*180.0/math.Pi

	if !isFinite(latDeg) || !isFinite(lonDeg) {
		return 0, 0, false
	}
	return lonDeg, latDeg, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
