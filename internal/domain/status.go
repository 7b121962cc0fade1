package domain

import "time"

// StatusSource says which branch of resolution produced a CurrentStatus.
// Exactly four cases exist; every CurrentStatus is built by one of the
// four constructors below and carries its constructor's tag.
type StatusSource string

const (
	// SourceOverride: an unexpired manually posted override won.
	SourceOverride StatusSource = "override"
	// SourceSegment: the itinerary segment covering "now" won.
	SourceSegment StatusSource = "segment"
	// SourcePreTrip: now is before the first segment starts (or there
	// are no segments at all).
	SourcePreTrip StatusSource = "pre_trip"
	// SourcePostTrip: now is past the end of the last segment.
	SourcePostTrip StatusSource = "post_trip"
)

// CurrentStatus is the derived "where is Ben right now" value. It is
// recomputed wholesale on every resolution pass and never persisted.
// The flight fields are set together, and only when the status came from
// a flying segment; an override always suppresses them.
type CurrentStatus struct {
	Source     StatusSource `json:"source"`
	Emoji      string       `json:"emoji"`
	Text       string       `json:"text"`
	KidsText   string       `json:"kids_text"`
	Note       *string      `json:"note,omitempty"`
	Coordinate *Coordinate  `json:"coordinate,omitempty"`
	IsOverride bool         `json:"is_override"`
	UpdatedAt  *time.Time   `json:"updated_at,omitempty"`

	FlightNumber    *string    `json:"flight_number,omitempty"`
	FlightFrom      *string    `json:"flight_from,omitempty"`
	FlightTo        *string    `json:"flight_to,omitempty"`
	FlightStartTime *time.Time `json:"flight_start_time,omitempty"`
	FlightEndTime   *time.Time `json:"flight_end_time,omitempty"`
}

// IsFlying reports whether the status describes an in-progress flight.
func (c CurrentStatus) IsFlying() bool {
	return c.FlightNumber != nil
}

// FlightProgress returns the normalised progress of the current flight at
// the given instant, clamped to [0,1]. ok is false when the status has no
// flight window.
func (c CurrentStatus) FlightProgress(now time.Time) (float64, bool) {
	if c.FlightStartTime == nil || c.FlightEndTime == nil {
		return 0, false
	}
	start, end := *c.FlightStartTime, *c.FlightEndTime
	if now.Before(start) {
		return 0, true
	}
	if !now.Before(end) {
		return 1, true
	}
	return float64(now.Sub(start)) / float64(end.Sub(start)), true
}

// StatusFromSegment builds a CurrentStatus from the itinerary segment
// covering "now". Flight fields are populated only for flight legs.
func StatusFromSegment(seg TripSegment) CurrentStatus {
	c := CurrentStatus{
		Source:   SourceSegment,
		Emoji:    seg.StatusEmoji,
		Text:     seg.StatusText,
		KidsText: seg.KidsText,
	}
	if coord, ok := seg.Coordinate(); ok {
		c.Coordinate = &coord
	}
	if seg.IsFlying() {
		c.FlightNumber = seg.FlightNumber
		c.FlightFrom = seg.FlightFrom
		c.FlightTo = seg.FlightTo
		start, end := seg.StartTime, seg.EndTime
		c.FlightStartTime = &start
		c.FlightEndTime = &end
	}
	return c
}

// StatusFromOverride builds a CurrentStatus from a manually posted
// override. Overrides never carry flight fields.
func StatusFromOverride(o StatusOverride) CurrentStatus {
	c := CurrentStatus{
		Source:     SourceOverride,
		Emoji:      o.StatusEmoji,
		Text:       o.StatusText,
		KidsText:   o.KidsText,
		Note:       o.Note,
		IsOverride: true,
	}
	created := o.CreatedAt
	c.UpdatedAt = &created
	if coord, ok := o.Coordinate(); ok {
		c.Coordinate = &coord
	}
	return c
}

// homeCoordinate is where the sentinels place Ben: home in Wollongong.
var homeCoordinate = Coordinate{Lat: -34.4278, Lng: 150.8931}

// PreTripStatus is the sentinel shown before the first segment starts.
func PreTripStatus() CurrentStatus {
	home := homeCoordinate
	return CurrentStatus{
		Source:     SourcePreTrip,
		Emoji:      "📅",
		Text:       "Trip starts soon!",
		KidsText:   "Daddy's trip is coming up!",
		Coordinate: &home,
	}
}

// PostTripStatus is the sentinel shown once the last segment has ended.
func PostTripStatus() CurrentStatus {
	home := homeCoordinate
	return CurrentStatus{
		Source:     SourcePostTrip,
		Emoji:      "🏠",
		Text:       "Back home!",
		KidsText:   "Daddy's home!",
		Coordinate: &home,
	}
}
