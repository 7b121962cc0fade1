// Package service contains the business logic for the Where's Ben? API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/andiyar/wheresben/internal/domain"
	"github.com/andiyar/wheresben/internal/repo"
)

// TripService implements read operations over the itinerary and trip config.
type TripService struct {
	segments repo.SegmentRepo
	config   repo.ConfigRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(segments repo.SegmentRepo, config repo.ConfigRepo) *TripService {
	return &TripService{segments: segments, config: config}
}

// Segments returns the full itinerary ordered by start time.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) Segments(ctx context.Context) ([]domain.TripSegment, error) {
	segments, err := s.segments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Segments: %w", err)
	}
	if segments == nil {
		return []domain.TripSegment{}, nil
	}
	return segments, nil
}

// Flights returns just the flight legs, in itinerary order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) Flights(ctx context.Context) ([]domain.TripSegment, error) {
	segments, err := s.segments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Flights: %w", err)
	}
	flights := []domain.TripSegment{}
	for _, seg := range segments {
		if seg.IsFlying() {
			flights = append(flights, seg)
		}
	}
	return flights, nil
}

// Config returns the config rows folded into a TripConfig, with defaults
// applied for missing keys.
func (s *TripService) Config(ctx context.Context) (domain.TripConfig, error) {
	rows, err := s.config.List(ctx)
	if err != nil {
		return domain.TripConfig{}, fmt.Errorf("service.TripService.Config: %w", err)
	}
	return domain.NewTripConfig(rows), nil
}
