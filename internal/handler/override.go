package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/andiyar/wheresben/internal/domain"
)

// overrideRequest is the POST /api/v1/override body: what to show, an
// optional note and position, and an optional lifetime in minutes.
type overrideRequest struct {
	StatusEmoji      string   `json:"status_emoji"`
	StatusText       string   `json:"status_text"`
	KidsText         string   `json:"kids_text"`
	Note             *string  `json:"note,omitempty"`
	Lat              *float64 `json:"lat,omitempty"`
	Lng              *float64 `json:"lng,omitempty"`
	ExpiresInMinutes *int     `json:"expires_in_minutes,omitempty"`
}

// GetOverride handles GET /api/v1/override.
// Returns the override in force right now, or 404 when there is none —
// an expired row counts as none.
func (s *Server) GetOverride(w http.ResponseWriter, r *http.Request) {
	o, err := s.statuses.Active(r.Context(), s.tracker.Now())
	if err != nil {
		respondError(w, err, "no active override")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// PostOverride handles POST /api/v1/override.
// Posting replaces any prior override (single logical row) and expires
// six hours out unless the body chooses a shorter lifetime.
func (s *Server) PostOverride(w http.ResponseWriter, r *http.Request) {
	var req overrideRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "request body is invalid: "+err.Error())
		return
	}

	draft := domain.OverrideDraft{
		StatusEmoji: req.StatusEmoji,
		StatusText:  req.StatusText,
		KidsText:    req.KidsText,
		Note:        req.Note,
		Lat:         req.Lat,
		Lng:         req.Lng,
	}
	if req.ExpiresInMinutes != nil {
		draft.Lifetime = time.Duration(*req.ExpiresInMinutes) * time.Minute
	}

	created, err := s.statuses.Post(r.Context(), draft, s.tracker.Now())
	if err != nil {
		respondError(w, err, "")
		return
	}

	// Pull the fresh override into the snapshot now rather than waiting
	// for the next poll; if this fails the poll will catch up.
	_ = s.tracker.Refresh(r.Context())

	writeJSON(w, http.StatusCreated, created)
}

// DeleteOverride handles DELETE /api/v1/override.
func (s *Server) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	if err := s.statuses.Clear(r.Context()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, err, "no override to clear")
			return
		}
		respondError(w, err, "")
		return
	}

	_ = s.tracker.Refresh(r.Context())

	w.WriteHeader(http.StatusNoContent)
}
