// Package domain contains the core data types for the Where's Ben? backend.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (status, repo, service, handler).
package domain

import "time"

// TripSegment is one time-boxed block of the trip itinerary: a flight, a
// hotel stay, a conference day, and so on. Segments are created and edited
// by the traveller out of band and are read-only here; the full set for a
// trip is expected to be non-overlapping and ordered by StartTime.
type TripSegment struct {
	ID           int       `json:"id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Location     string    `json:"location"`
	StatusEmoji  string    `json:"status_emoji"`
	StatusText   string    `json:"status_text"`
	KidsText     string    `json:"kids_text"`
	Lat          *float64  `json:"lat,omitempty"`
	Lng          *float64  `json:"lng,omitempty"`
	FlightNumber *string   `json:"flight_number,omitempty"`
	FlightFrom   *string   `json:"flight_from,omitempty"`
	FlightTo     *string   `json:"flight_to,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsFlying reports whether this segment is a flight leg.
// A segment is a flight iff it carries a flight number.
func (s TripSegment) IsFlying() bool {
	return s.FlightNumber != nil
}

// Coordinate returns the segment's position, or ok=false when the segment
// has no coordinate pair. Lat and Lng are always set together.
func (s TripSegment) Coordinate() (Coordinate, bool) {
	if s.Lat == nil || s.Lng == nil {
		return Coordinate{}, false
	}
	return Coordinate{Lat: *s.Lat, Lng: *s.Lng}, true
}

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
