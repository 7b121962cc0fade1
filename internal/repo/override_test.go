package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andiyar/wheresben/internal/domain"
	"github.com/andiyar/wheresben/internal/repo"
)

// overrideFixture returns an override that is active at the given instant.
func overrideFixture(now time.Time) domain.StatusOverride {
	note := "Beers with the conference crowd"
	return domain.StatusOverride{
		ID:          domain.OverrideID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(domain.DefaultOverrideLifetime),
		StatusEmoji: "🍽️",
		StatusText:  "Getting food",
		KidsText:    "Daddy's having dinner",
		Note:        &note,
	}
}

func TestOverrideRepo_UpsertThenGetActive(t *testing.T) {
	r := repo.NewOverrideRepo(newTestTx(t))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	written, err := r.Upsert(ctx, overrideFixture(now))
	require.NoError(t, err)
	assert.Equal(t, domain.OverrideID, written.ID)

	got, err := r.GetActive(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, "Getting food", got.StatusText)
	require.NotNil(t, got.Note)
	assert.Equal(t, "Beers with the conference crowd", *got.Note)
}

func TestOverrideRepo_Upsert_ReplacesPriorRow(t *testing.T) {
	r := repo.NewOverrideRepo(newTestTx(t))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err := r.Upsert(ctx, overrideFixture(now))
	require.NoError(t, err)

	second := overrideFixture(now.Add(time.Hour))
	second.StatusEmoji = "😴"
	second.StatusText = "Going to sleep"
	second.KidsText = "Daddy's sleeping"
	second.Note = nil

	got, err := r.Upsert(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "Going to sleep", got.StatusText)
	assert.Nil(t, got.Note, "replacement should clear the prior note")

	// Still exactly one logical row: the latest one.
	active, err := r.GetActive(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "😴", active.StatusEmoji)
}

func TestOverrideRepo_GetActive_Expired(t *testing.T) {
	r := repo.NewOverrideRepo(newTestTx(t))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err := r.Upsert(ctx, overrideFixture(now))
	require.NoError(t, err)

	// One second past expiry the override no longer resolves.
	_, err = r.GetActive(ctx, now.Add(domain.DefaultOverrideLifetime+time.Second))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOverrideRepo_GetActive_ExpiryBoundaryInclusive(t *testing.T) {
	r := repo.NewOverrideRepo(newTestTx(t))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err := r.Upsert(ctx, overrideFixture(now))
	require.NoError(t, err)

	// Exactly at expires_at the override is still active.
	got, err := r.GetActive(ctx, now.Add(domain.DefaultOverrideLifetime))
	require.NoError(t, err)
	assert.Equal(t, "Getting food", got.StatusText)
}

func TestOverrideRepo_GetActive_NoRow(t *testing.T) {
	r := repo.NewOverrideRepo(newTestTx(t))

	_, err := r.GetActive(context.Background(), time.Now().UTC())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOverrideRepo_Delete(t *testing.T) {
	r := repo.NewOverrideRepo(newTestTx(t))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err := r.Upsert(ctx, overrideFixture(now))
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx))

	_, err = r.GetActive(ctx, now)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOverrideRepo_Delete_NothingToClear(t *testing.T) {
	r := repo.NewOverrideRepo(newTestTx(t))

	err := r.Delete(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
