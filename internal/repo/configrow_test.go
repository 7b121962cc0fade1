package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andiyar/wheresben/internal/repo"
)

func strptr(s string) *string { return &s }

func TestConfigRepo_SetAndList(t *testing.T) {
	r := repo.NewConfigRepo(newTestTx(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "home_timezone", strptr("Australia/Sydney")))
	require.NoError(t, r.Set(ctx, "dad_name", strptr("Ben")))

	rows, err := r.List(ctx)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Ordered by key.
	assert.Equal(t, "dad_name", rows[0].Key)
	assert.Equal(t, "home_timezone", rows[1].Key)
	require.NotNil(t, rows[0].Value)
	assert.Equal(t, "Ben", *rows[0].Value)
}

func TestConfigRepo_Set_Replaces(t *testing.T) {
	r := repo.NewConfigRepo(newTestTx(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "hotel_name", strptr("Hotel Golden Prague")))
	require.NoError(t, r.Set(ctx, "hotel_name", strptr("Hotel U Prince")))

	rows, err := r.List(ctx)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Value)
	assert.Equal(t, "Hotel U Prince", *rows[0].Value)
}

func TestConfigRepo_Set_NullValue(t *testing.T) {
	r := repo.NewConfigRepo(newTestTx(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "contact_phone", nil))

	rows, err := r.List(ctx)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Value)
}
