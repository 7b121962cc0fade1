// Package handler implements the HTTP handlers for the Where's Ben? API.
// All handlers are methods on Server. Methods are split into resource-
// specific files (override.go, segments.go, etc.) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/andiyar/wheresben/internal/domain"
	"github.com/andiyar/wheresben/internal/tracker"
)

// TripServicer defines the itinerary operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Segments(ctx context.Context) ([]domain.TripSegment, error)
	Flights(ctx context.Context) ([]domain.TripSegment, error)
	Config(ctx context.Context) (domain.TripConfig, error)
}

// StatusServicer defines the override operations the handlers depend on.
type StatusServicer interface {
	Active(ctx context.Context, now time.Time) (domain.StatusOverride, error)
	Post(ctx context.Context, draft domain.OverrideDraft, now time.Time) (domain.StatusOverride, error)
	Clear(ctx context.Context) error
}

// NotifierServicer defines the device-registration operation the handlers
// depend on.
type NotifierServicer interface {
	RegisterDevice(ctx context.Context, deviceID, token string) (domain.PushToken, error)
}

// StatusTracker is the snapshot/clock surface the read handlers depend
// on. *tracker.Tracker satisfies it.
type StatusTracker interface {
	Now() time.Time
	Current(at time.Time) domain.CurrentStatus
	Snapshot() (tracker.Snapshot, bool)
	Refresh(ctx context.Context) error
}

// Server implements all API endpoints. Wire it in main.go via Routes.
// Methods are in resource-specific files but all operate on this struct.
type Server struct {
	trips    TripServicer
	statuses StatusServicer
	notifier NotifierServicer
	tracker  StatusTracker
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, statuses StatusServicer, notifier NotifierServicer, tracker StatusTracker) *Server {
	return &Server{trips: trips, statuses: statuses, notifier: notifier, tracker: tracker}
}

// Routes registers every endpoint on r. Mutating routes go under
// requireKey so the write surface stays behind the API key; reads are
// public (the dashboards are unauthenticated by design).
func (s *Server) Routes(r chi.Router, requireKey func(http.Handler) http.Handler) {
	r.Get("/healthz", s.GetHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/segments", s.ListSegments)
		r.Get("/flights", s.ListFlights)
		r.Get("/flights/{id}/path", s.GetFlightPath)
		r.Get("/config", s.GetConfig)
		r.Get("/override", s.GetOverride)
		r.Get("/status/current", s.GetCurrentStatus)
		r.Get("/countdown", s.GetCountdown)
		r.Get("/quick-statuses", s.ListQuickStatuses)

		r.Group(func(r chi.Router) {
			r.Use(requireKey)
			r.Post("/override", s.PostOverride)
			r.Delete("/override", s.DeleteOverride)
			r.Put("/push-tokens", s.PutPushToken)
		})
	})
}

// writeJSON writes v as a JSON response body with the given status code.
// Encoding failures are swallowed: the header is already written, so the
// best we can do is drop the connection short.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v, rejecting unknown fields so
// client typos surface as 422s instead of silently dropped data.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
