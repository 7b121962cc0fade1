package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/andiyar/wheresben/internal/countdown"
	"github.com/andiyar/wheresben/internal/domain"
)

// errNoReturnConfigured maps a missing return_datetime_utc config key to
// the standard not-found response.
var errNoReturnConfigured = fmt.Errorf("countdown: %w", domain.ErrNotFound)

// atParam parses the optional ?at=RFC3339 query parameter, defaulting to
// the tracker's now. ok is false when the parameter was present but
// malformed (the 422 has already been written).
func (s *Server) atParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("at")
	if raw == "" {
		return s.tracker.Now(), true
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		respondBadRequest(w, "at must be an RFC 3339 timestamp")
		return time.Time{}, false
	}
	return at, true
}

// currentStatusResponse wraps the resolved status with the evaluation
// instant and, when flying, the live progress fraction.
type currentStatusResponse struct {
	At             time.Time `json:"at"`
	Status         any       `json:"status"`
	FlightProgress *float64  `json:"flight_progress,omitempty"`
}

// GetCurrentStatus handles GET /api/v1/status/current.
// Supports ?at=RFC3339 for rehearsing the trip at another instant.
// Resolution reads the tracker snapshot only, so this endpoint keeps
// answering from the last good data during a database outage.
func (s *Server) GetCurrentStatus(w http.ResponseWriter, r *http.Request) {
	at, ok := s.atParam(w, r)
	if !ok {
		return
	}

	current := s.tracker.Current(at)

	resp := currentStatusResponse{At: at, Status: current}
	if progress, ok := current.FlightProgress(at); ok {
		resp.FlightProgress = &progress
	}
	writeJSON(w, http.StatusOK, resp)
}

// countdownResponse is the time-until-home payload for both dashboards:
// a raw remaining duration for the adults, a sleeps count for the kids.
type countdownResponse struct {
	ReturnAt         time.Time `json:"return_at"`
	Home             bool      `json:"home"`
	RemainingSeconds *int64    `json:"remaining_seconds,omitempty"`
	Sleeps           int       `json:"sleeps"`
}

// GetCountdown handles GET /api/v1/countdown.
// Returns 404 until a return timestamp is configured.
// Supports ?at=RFC3339 like the other derived endpoints.
func (s *Server) GetCountdown(w http.ResponseWriter, r *http.Request) {
	at, ok := s.atParam(w, r)
	if !ok {
		return
	}

	snap, _ := s.tracker.Snapshot()
	ret := snap.Config.ReturnDateTimeUTC
	if ret == nil {
		respondError(w, errNoReturnConfigured, "no return date configured")
		return
	}

	resp := countdownResponse{
		ReturnAt: *ret,
		Sleeps:   countdown.Sleeps(*ret, at, snap.Config.HomeLocation()),
	}
	if remaining, ok := countdown.TimeUntil(*ret, at); ok {
		secs := int64(remaining.Seconds())
		resp.RemainingSeconds = &secs
	} else {
		resp.Home = true
	}
	writeJSON(w, http.StatusOK, resp)
}
