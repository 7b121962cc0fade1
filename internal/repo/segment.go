// Package repo contains all database access logic for the Where's Ben? API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/andiyar/wheresben/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers in this package to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// SegmentRepo defines the persistence operations for the trip itinerary.
// Segments are entered out of band (SQL console or seed script), so the
// API surface is read-only plus a write used by seeding and tests.
type SegmentRepo interface {
	// List returns all segments ordered by start_time ascending.
	List(ctx context.Context) ([]domain.TripSegment, error)

	// Create inserts a segment and returns the persisted record (with
	// DB-generated id and created_at populated).
	Create(ctx context.Context, seg domain.TripSegment) (domain.TripSegment, error)
}

// pgSegmentRepo is the Postgres implementation of SegmentRepo.
type pgSegmentRepo struct {
	db db
}

// NewSegmentRepo constructs a SegmentRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewSegmentRepo(db db) SegmentRepo {
	return &pgSegmentRepo{db: db}
}

// List returns the full itinerary in resolution order (start_time ascending).
func (r *pgSegmentRepo) List(ctx context.Context) ([]domain.TripSegment, error) {
	const q = `
		SELECT id, start_time, end_time, location, status_emoji, status_text,
		       kids_text, lat, lng, flight_number, flight_from, flight_to, created_at
		FROM trip_segments
		ORDER BY start_time ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.SegmentRepo.List: %w", err)
	}
	defer rows.Close()

	var segments []domain.TripSegment
	for rows.Next() {
		seg, err := scanSegment(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SegmentRepo.List: scan: %w", err)
		}
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SegmentRepo.List: rows: %w", err)
	}

	return segments, nil
}

// Create inserts a new segment row and returns the full persisted record.
func (r *pgSegmentRepo) Create(ctx context.Context, seg domain.TripSegment) (domain.TripSegment, error) {
	const q = `
		INSERT INTO trip_segments (start_time, end_time, location, status_emoji,
		                           status_text, kids_text, lat, lng,
		                           flight_number, flight_from, flight_to)
		VALUES (@start_time, @end_time, @location, @status_emoji,
		        @status_text, @kids_text, @lat, @lng,
		        @flight_number, @flight_from, @flight_to)
		RETURNING id, start_time, end_time, location, status_emoji, status_text,
		          kids_text, lat, lng, flight_number, flight_from, flight_to, created_at`

	args := pgx.NamedArgs{
		"start_time":    seg.StartTime,
		"end_time":      seg.EndTime,
		"location":      seg.Location,
		"status_emoji":  seg.StatusEmoji,
		"status_text":   seg.StatusText,
		"kids_text":     seg.KidsText,
		"lat":           seg.Lat, // nil becomes NULL
		"lng":           seg.Lng,
		"flight_number": seg.FlightNumber,
		"flight_from":   seg.FlightFrom,
		"flight_to":     seg.FlightTo,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanSegment(row)
	if err != nil {
		return domain.TripSegment{}, fmt.Errorf("repo.SegmentRepo.Create: %w", err)
	}
	return result, nil
}

// scanSegment maps a single database row into a domain.TripSegment.
func scanSegment(s scanner) (domain.TripSegment, error) {
	var seg domain.TripSegment
	err := s.Scan(
		&seg.ID, &seg.StartTime, &seg.EndTime, &seg.Location,
		&seg.StatusEmoji, &seg.StatusText, &seg.KidsText,
		&seg.Lat, &seg.Lng,
		&seg.FlightNumber, &seg.FlightFrom, &seg.FlightTo,
		&seg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripSegment{}, domain.ErrNotFound
		}
		return domain.TripSegment{}, err
	}
	return seg, nil
}
