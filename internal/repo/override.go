package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/andiyar/wheresben/internal/domain"
)

// OverrideRepo defines the persistence operations for the manual status
// override. The table holds at most one logical row (id 1): Upsert
// replaces it, GetActive reads it only while unexpired, Delete clears it.
type OverrideRepo interface {
	// GetActive returns the override if one exists and is unexpired at
	// the given instant. Returns domain.ErrNotFound when there is no row
	// or the row has expired — callers treat that as "no override".
	GetActive(ctx context.Context, now time.Time) (domain.StatusOverride, error)

	// Upsert writes the single override row, replacing any prior one,
	// and returns the persisted record. created_at is reset on every
	// replacement so "updated N minutes ago" reflects the latest post.
	Upsert(ctx context.Context, o domain.StatusOverride) (domain.StatusOverride, error)

	// Delete clears the override early. Returns domain.ErrNotFound when
	// there was nothing to clear.
	Delete(ctx context.Context) error
}

// pgOverrideRepo is the Postgres implementation of OverrideRepo.
type pgOverrideRepo struct {
	db db
}

// NewOverrideRepo constructs an OverrideRepo backed by the provided db connection.
func NewOverrideRepo(db db) OverrideRepo {
	return &pgOverrideRepo{db: db}
}

// GetActive fetches the unexpired override, newest first. The expiry
// filter is inclusive: a row expiring exactly at now is still active.
func (r *pgOverrideRepo) GetActive(ctx context.Context, now time.Time) (domain.StatusOverride, error) {
	const q = `
		SELECT id, created_at, expires_at, status_emoji, status_text, kids_text, note, lat, lng
		FROM status_override
		WHERE expires_at >= @now
		ORDER BY created_at DESC
		LIMIT 1`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"now": now})
	result, err := scanOverride(row)
	if err != nil {
		return domain.StatusOverride{}, fmt.Errorf("repo.OverrideRepo.GetActive: %w", err)
	}
	return result, nil
}

// Upsert writes the override row, replacing the previous one in place.
func (r *pgOverrideRepo) Upsert(ctx context.Context, o domain.StatusOverride) (domain.StatusOverride, error) {
	const q = `
		INSERT INTO status_override (id, created_at, expires_at, status_emoji,
		                             status_text, kids_text, note, lat, lng)
		VALUES (@id, @created_at, @expires_at, @status_emoji,
		        @status_text, @kids_text, @note, @lat, @lng)
		ON CONFLICT (id) DO UPDATE
		SET created_at   = EXCLUDED.created_at,
		    expires_at   = EXCLUDED.expires_at,
		    status_emoji = EXCLUDED.status_emoji,
		    status_text  = EXCLUDED.status_text,
		    kids_text    = EXCLUDED.kids_text,
		    note         = EXCLUDED.note,
		    lat          = EXCLUDED.lat,
		    lng          = EXCLUDED.lng
		RETURNING id, created_at, expires_at, status_emoji, status_text, kids_text, note, lat, lng`

	args := pgx.NamedArgs{
		"id":           o.ID,
		"created_at":   o.CreatedAt,
		"expires_at":   o.ExpiresAt,
		"status_emoji": o.StatusEmoji,
		"status_text":  o.StatusText,
		"kids_text":    o.KidsText,
		"note":         o.Note,
		"lat":          o.Lat,
		"lng":          o.Lng,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanOverride(row)
	if err != nil {
		return domain.StatusOverride{}, fmt.Errorf("repo.OverrideRepo.Upsert: %w", err)
	}
	return result, nil
}

// Delete removes the single override row.
func (r *pgOverrideRepo) Delete(ctx context.Context) error {
	const q = `DELETE FROM status_override WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": domain.OverrideID})
	if err != nil {
		return fmt.Errorf("repo.OverrideRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.OverrideRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanOverride maps a single database row into a domain.StatusOverride.
func scanOverride(s scanner) (domain.StatusOverride, error) {
	var o domain.StatusOverride
	err := s.Scan(
		&o.ID, &o.CreatedAt, &o.ExpiresAt,
		&o.StatusEmoji, &o.StatusText, &o.KidsText,
		&o.Note, &o.Lat, &o.Lng,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.StatusOverride{}, domain.ErrNotFound
		}
		return domain.StatusOverride{}, err
	}
	return o, nil
}
