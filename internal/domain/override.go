package domain

import "time"

// OverrideID is the primary key of the single logical override row.
// Posting a new override upserts this row rather than appending, so the
// store never holds more than one override.
const OverrideID = 1

// DefaultOverrideLifetime is how long a posted override stays active when
// the caller does not choose a lifetime.
const DefaultOverrideLifetime = 6 * time.Hour

// StatusOverride is a manually posted status that trumps the itinerary
// until it expires. Once expired it is ignored by the resolver; deleting
// the row is optional housekeeping, not required for correctness.
type StatusOverride struct {
	ID          int       `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	StatusEmoji string    `json:"status_emoji"`
	StatusText  string    `json:"status_text"`
	KidsText    string    `json:"kids_text"`
	Note        *string   `json:"note,omitempty"`
	Lat         *float64  `json:"lat,omitempty"`
	Lng         *float64  `json:"lng,omitempty"`
}

// OverrideDraft is the operator's input when posting a status: what to
// show, an optional note and position, and an optional lifetime. A zero
// Lifetime means DefaultOverrideLifetime.
type OverrideDraft struct {
	StatusEmoji string
	StatusText  string
	KidsText    string
	Note        *string
	Lat         *float64
	Lng         *float64
	Lifetime    time.Duration
}

// ActiveAt reports whether the override should still win over the
// itinerary at the given instant. The boundary is inclusive: an override
// is active up to and including its expiry instant.
func (o StatusOverride) ActiveAt(now time.Time) bool {
	return !now.After(o.ExpiresAt)
}

// Coordinate returns the override's position, or ok=false when the
// override has no coordinate pair.
func (o StatusOverride) Coordinate() (Coordinate, bool) {
	if o.Lat == nil || o.Lng == nil {
		return Coordinate{}, false
	}
	return Coordinate{Lat: *o.Lat, Lng: *o.Lng}, true
}
