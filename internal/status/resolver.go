// Package status derives the current trip status from the itinerary and
// an optional manual override. Everything here is a pure function of its
// inputs — no clocks, no I/O — so callers supply "now" explicitly.
package status

import (
	"fmt"
	"time"

	"github.com/andiyar/wheresben/internal/domain"
)

// Resolve maps the itinerary, an optional override, and an instant to a
// single CurrentStatus. Priority order:
//
//  1. An override that is still active at now wins outright.
//  2. Otherwise the first segment whose [StartTime, EndTime) window
//     contains now wins. Segments are scanned in the given order and are
//     assumed sorted ascending by StartTime; Resolve does not re-sort.
//  3. Before the first segment starts (or with no segments at all) the
//     pre-trip sentinel is returned.
//  4. Past the end of the last segment the post-trip sentinel is returned.
//
// Resolve is total: it never fails, whatever the inputs. Malformed
// segments simply resolve like any other (see ValidateSegments for
// flagging them).
func Resolve(segments []domain.TripSegment, override *domain.StatusOverride, now time.Time) domain.CurrentStatus {
	if override != nil && override.ActiveAt(now) {
		return domain.StatusFromOverride(*override)
	}

	for _, seg := range segments {
		if !now.Before(seg.StartTime) && now.Before(seg.EndTime) {
			return domain.StatusFromSegment(seg)
		}
	}

	if len(segments) == 0 || now.Before(segments[0].StartTime) {
		return domain.PreTripStatus()
	}
	return domain.PostTripStatus()
}

// Problem describes one data-entry defect found in an itinerary.
// SegmentID identifies the offending segment.
type Problem struct {
	SegmentID int
	Message   string
}

func (p Problem) String() string {
	return fmt.Sprintf("segment %d: %s", p.SegmentID, p.Message)
}

// ValidateSegments checks an itinerary for defects that make resolution
// order-dependent or a flight leg unrenderable: inverted time windows,
// out-of-order lists, overlapping windows, and flights missing airport
// codes. It never fails the itinerary — resolution stays deterministic
// regardless (first match wins) — but callers are expected to surface
// every returned problem so the operator can fix the data.
func ValidateSegments(segments []domain.TripSegment) []Problem {
	var problems []Problem

	for i, seg := range segments {
		if !seg.StartTime.Before(seg.EndTime) {
			problems = append(problems, Problem{
				SegmentID: seg.ID,
				Message:   "start_time is not before end_time",
			})
		}
		if seg.IsFlying() && (seg.FlightFrom == nil || seg.FlightTo == nil) {
			problems = append(problems, Problem{
				SegmentID: seg.ID,
				Message:   "flight segment is missing origin or destination airport code",
			})
		}
		if i == 0 {
			continue
		}
		prev := segments[i-1]
		if seg.StartTime.Before(prev.StartTime) {
			problems = append(problems, Problem{
				SegmentID: seg.ID,
				Message:   fmt.Sprintf("starts before segment %d; list is not sorted by start_time", prev.ID),
			})
		}
		if seg.StartTime.Before(prev.EndTime) && prev.StartTime.Before(seg.EndTime) {
			problems = append(problems, Problem{
				SegmentID: seg.ID,
				Message:   fmt.Sprintf("overlaps segment %d in time", prev.ID),
			})
		}
	}

	return problems
}
