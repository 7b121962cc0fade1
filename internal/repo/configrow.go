package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/andiyar/wheresben/internal/domain"
)

// ConfigRepo defines the persistence operations for trip config rows.
type ConfigRepo interface {
	// List returns every key/value row. Folding into a TripConfig is the
	// service layer's job.
	List(ctx context.Context) ([]domain.ConfigRow, error)

	// Set upserts a single key. A nil value stores SQL NULL, which the
	// fold treats as an absent key.
	Set(ctx context.Context, key string, value *string) error
}

// pgConfigRepo is the Postgres implementation of ConfigRepo.
type pgConfigRepo struct {
	db db
}

// NewConfigRepo constructs a ConfigRepo backed by the provided db connection.
func NewConfigRepo(db db) ConfigRepo {
	return &pgConfigRepo{db: db}
}

// List returns all config rows ordered by key for stable output.
func (r *pgConfigRepo) List(ctx context.Context) ([]domain.ConfigRow, error) {
	const q = `SELECT key, value FROM config ORDER BY key ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ConfigRepo.List: %w", err)
	}
	defer rows.Close()

	var out []domain.ConfigRow
	for rows.Next() {
		var row domain.ConfigRow
		if err := rows.Scan(&row.Key, &row.Value); err != nil {
			return nil, fmt.Errorf("repo.ConfigRepo.List: scan: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ConfigRepo.List: rows: %w", err)
	}

	return out, nil
}

// Set upserts one config key.
func (r *pgConfigRepo) Set(ctx context.Context, key string, value *string) error {
	const q = `
		INSERT INTO config (key, value)
		VALUES (@key, @value)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key, "value": value})
	if err != nil {
		return fmt.Errorf("repo.ConfigRepo.Set: %w", err)
	}
	return nil
}
