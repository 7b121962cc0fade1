package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/andiyar/wheresben/internal/domain"
	"github.com/andiyar/wheresben/internal/flightpath"
)

// ListSegments handles GET /api/v1/segments.
// Segments come back ordered by start_time ascending, the order the
// resolver expects.
func (s *Server) ListSegments(w http.ResponseWriter, r *http.Request) {
	segments, err := s.trips.Segments(r.Context())
	if err != nil {
		respondError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, segments)
}

// ListFlights handles GET /api/v1/flights: just the flight legs, in
// itinerary order.
func (s *Server) ListFlights(w http.ResponseWriter, r *http.Request) {
	flights, err := s.trips.Flights(r.Context())
	if err != nil {
		respondError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, flights)
}

// flightPathResponse is the map-drawing payload for one flight leg: the
// full curved polyline plus the live marker at the current progress.
type flightPathResponse struct {
	FlightNumber string              `json:"flight_number"`
	From         domain.Airport      `json:"from"`
	To           domain.Airport      `json:"to"`
	DistanceKm   float64             `json:"distance_km"`
	Progress     float64             `json:"progress"`
	Position     domain.Coordinate   `json:"position"`
	Rotation     float64             `json:"rotation"`
	Path         []domain.Coordinate `json:"path"`
}

// GetFlightPath handles GET /api/v1/flights/{id}/path.
// Supports ?at=RFC3339 to evaluate progress at an instant other than now.
func (s *Server) GetFlightPath(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, "flight id must be an integer")
		return
	}

	at, ok := s.atParam(w, r)
	if !ok {
		return
	}

	flights, err := s.trips.Flights(r.Context())
	if err != nil {
		respondError(w, err, "")
		return
	}

	var flight *domain.TripSegment
	for i := range flights {
		if flights[i].ID == id {
			flight = &flights[i]
			break
		}
	}
	if flight == nil {
		respondError(w, domain.ErrNotFound, "flight not found")
		return
	}

	if flight.FlightFrom == nil || flight.FlightTo == nil {
		respondBadRequest(w, "flight segment is missing airport codes")
		return
	}
	from, fromOK := domain.Airports[*flight.FlightFrom]
	to, toOK := domain.Airports[*flight.FlightTo]
	if !fromOK || !toOK {
		respondBadRequest(w, "flight references an unknown airport code")
		return
	}

	progress := flightpath.Progress(flight.StartTime, flight.EndTime, at)

	writeJSON(w, http.StatusOK, flightPathResponse{
		FlightNumber: *flight.FlightNumber,
		From:         from,
		To:           to,
		DistanceKm:   flightpath.Distance(from.Coordinate, to.Coordinate) / 1000,
		Progress:     progress,
		Position:     flightpath.Position(from.Coordinate, to.Coordinate, progress),
		Rotation:     flightpath.MarkerRotation(from.Coordinate, to.Coordinate),
		Path:         flightpath.Path(from.Coordinate, to.Coordinate, flightpath.DefaultPathSteps),
	})
}
