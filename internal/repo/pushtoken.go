package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/google/uuid"

	"github.com/andiyar/wheresben/internal/domain"
)

// PushTokenRepo defines the persistence operations for push-notification
// device registrations and the sent-notification ledger.
type PushTokenRepo interface {
	// Upsert registers a device, replacing its token if the device_id is
	// already known, and returns the persisted record.
	Upsert(ctx context.Context, deviceID, token string) (domain.PushToken, error)

	// List returns every registered device, oldest first.
	List(ctx context.Context) ([]domain.PushToken, error)

	// RecordSent inserts a sent-notification row. inserted is false when
	// the trigger id was already recorded (the event was already fanned
	// out and must not be re-sent).
	RecordSent(ctx context.Context, triggerType, triggerID string) (inserted bool, err error)
}

// pgPushTokenRepo is the Postgres implementation of PushTokenRepo.
type pgPushTokenRepo struct {
	db db
}

// NewPushTokenRepo constructs a PushTokenRepo backed by the provided db connection.
func NewPushTokenRepo(db db) PushTokenRepo {
	return &pgPushTokenRepo{db: db}
}

// Upsert registers or refreshes a device registration.
func (r *pgPushTokenRepo) Upsert(ctx context.Context, deviceID, token string) (domain.PushToken, error) {
	const q = `
		INSERT INTO push_tokens (device_id, token)
		VALUES (@device_id, @token)
		ON CONFLICT (device_id) DO UPDATE
		SET token = EXCLUDED.token, updated_at = now()
		RETURNING id, device_id, token, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"device_id": deviceID, "token": token})
	result, err := scanPushToken(row)
	if err != nil {
		return domain.PushToken{}, fmt.Errorf("repo.PushTokenRepo.Upsert: %w", err)
	}
	return result, nil
}

// List returns all registered devices ordered by created_at ascending.
func (r *pgPushTokenRepo) List(ctx context.Context) ([]domain.PushToken, error) {
	const q = `
		SELECT id, device_id, token, created_at, updated_at
		FROM push_tokens
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.PushTokenRepo.List: %w", err)
	}
	defer rows.Close()

	var tokens []domain.PushToken
	for rows.Next() {
		tok, err := scanPushToken(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PushTokenRepo.List: scan: %w", err)
		}
		tokens = append(tokens, tok)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PushTokenRepo.List: rows: %w", err)
	}

	return tokens, nil
}

// RecordSent inserts a ledger row; a conflicting trigger_id means this
// event was already recorded and the insert is a no-op.
func (r *pgPushTokenRepo) RecordSent(ctx context.Context, triggerType, triggerID string) (bool, error) {
	const q = `
		INSERT INTO sent_notifications (trigger_type, trigger_id)
		VALUES (@trigger_type, @trigger_id)
		ON CONFLICT (trigger_id) DO NOTHING`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trigger_type": triggerType, "trigger_id": triggerID})
	if err != nil {
		return false, fmt.Errorf("repo.PushTokenRepo.RecordSent: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// scanPushToken maps a single database row into a domain.PushToken.
// It handles the UUID conversion from pgtype.
func scanPushToken(s scanner) (domain.PushToken, error) {
	var (
		tok domain.PushToken
		id  pgtype.UUID
	)
	err := s.Scan(&id, &tok.DeviceID, &tok.Token, &tok.CreatedAt, &tok.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PushToken{}, domain.ErrNotFound
		}
		return domain.PushToken{}, err
	}
	tok.ID = uuid.UUID(id.Bytes)
	return tok, nil
}
