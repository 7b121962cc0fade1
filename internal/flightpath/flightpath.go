// Package flightpath computes flight progress and map geometry for the
// dashboard's plane marker: a curved origin→destination path, the live
// position along it, and the marker's rotation. The curve is a quadratic
// bezier in raw degree space — it only has to look like a great-circle
// arc on a flat map, not be one — while distances use true great-circle
// arithmetic.
package flightpath

import (
	"math"
	"time"

	"github.com/golang/geo/s2"

	"github.com/andiyar/wheresben/internal/domain"
)

// curveOffset scales how far the bezier control point is pushed off the
// chord, as a fraction of the chord length.
const curveOffset = 0.2

// DefaultPathSteps is the sampling density used for the static polyline:
// 20 parametric steps, 21 points.
const DefaultPathSteps = 20

// earthRadiusMeters is Earth's mean radius.
const earthRadiusMeters = 6371000.0

// Progress returns the normalised progress of a flight at the given
// instant: 0 before start, 1 at or after end, linear in between.
func Progress(start, end, now time.Time) float64 {
	if now.Before(start) {
		return 0
	}
	if !now.Before(end) {
		return 1
	}
	return float64(now.Sub(start)) / float64(end.Sub(start))
}

// controlPoint is the bezier control point for the from→to curve: the
// chord midpoint pushed perpendicular to the chord by curveOffset times
// the chord length, all in degree space. When from == to the offset
// vanishes and the curve collapses to a point.
func controlPoint(from, to domain.Coordinate) domain.Coordinate {
	dLat := to.Lat - from.Lat
	dLng := to.Lng - from.Lng
	return domain.Coordinate{
		Lat: (from.Lat+to.Lat)/2 - curveOffset*dLng,
		Lng: (from.Lng+to.Lng)/2 + curveOffset*dLat,
	}
}

// Position evaluates the curved from→to path at parameter t in [0,1].
// t is clamped; Position(from, to, Progress(...)) is the live marker
// position.
func Position(from, to domain.Coordinate, t float64) domain.Coordinate {
	t = math.Max(0, math.Min(1, t))
	ctrl := controlPoint(from, to)
	u := 1 - t
	return domain.Coordinate{
		Lat: u*u*from.Lat + 2*u*t*ctrl.Lat + t*t*to.Lat,
		Lng: u*u*from.Lng + 2*u*t*ctrl.Lng + t*t*to.Lng,
	}
}

// Path samples the curved from→to path at steps+1 evenly spaced
// parameters, endpoints included. Use DefaultPathSteps for the polyline
// the maps draw.
func Path(from, to domain.Coordinate, steps int) []domain.Coordinate {
	if steps < 1 {
		steps = 1
	}
	points := make([]domain.Coordinate, 0, steps+1)
	for i := 0; i <= steps; i++ {
		points = append(points, Position(from, to, float64(i)/float64(steps)))
	}
	return points
}

// Bearing returns the initial bearing (forward azimuth) from one
// coordinate to another, in degrees normalised to [0, 360).
func Bearing(from, to domain.Coordinate) float64 {
	lat1 := from.Lat * math.Pi / 180
	lat2 := to.Lat * math.Pi / 180
	dLng := (to.Lng - from.Lng) * math.Pi / 180

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)

	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// MarkerRotation is the rotation to apply to the plane glyph for a
// from→to flight. The −90° compensates for the glyph pointing right at
// rest; callers using a different glyph should use Bearing directly.
func MarkerRotation(from, to domain.Coordinate) float64 {
	return Bearing(from, to) - 90
}

// Distance returns the great-circle distance between two coordinates in
// metres.
func Distance(from, to domain.Coordinate) float64 {
	p1 := s2.LatLngFromDegrees(from.Lat, from.Lng)
	p2 := s2.LatLngFromDegrees(to.Lat, to.Lng)
	return p1.Distance(p2).Radians() * earthRadiusMeters
}
