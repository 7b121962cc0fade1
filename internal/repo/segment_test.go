package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andiyar/wheresben/internal/domain"
	"github.com/andiyar/wheresben/internal/repo"
	"github.com/andiyar/wheresben/testutil"
)

// newTestTx opens a single transaction that is rolled back automatically
// when the test finishes, so repos built on it never leave state behind.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return tx
}

// segmentFixture returns a hotel-stay segment ready for insertion.
func segmentFixture() domain.TripSegment {
	lat, lng := 50.0875, 14.4213
	return domain.TripSegment{
		StartTime:   time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 5, 11, 7, 0, 0, 0, time.UTC),
		Location:    "Prague",
		StatusEmoji: "🏨",
		StatusText:  "At the hotel",
		KidsText:    "Daddy's at the hotel",
		Lat:         &lat,
		Lng:         &lng,
	}
}

// flightFixture returns a flight segment for the given leg and window.
func flightFixture(number, from, to string, start, end time.Time) domain.TripSegment {
	return domain.TripSegment{
		StartTime:    start,
		EndTime:      end,
		Location:     "In the air",
		StatusEmoji:  "✈️",
		StatusText:   "Flying " + from + " → " + to,
		KidsText:     "Daddy's on the plane!",
		FlightNumber: &number,
		FlightFrom:   &from,
		FlightTo:     &to,
	}
}

func TestSegmentRepo_Create(t *testing.T) {
	r := repo.NewSegmentRepo(newTestTx(t))
	ctx := context.Background()

	input := segmentFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotZero(t, got.ID, "ID should be DB-generated")
	assert.True(t, got.StartTime.Equal(input.StartTime), "StartTime mismatch")
	assert.True(t, got.EndTime.Equal(input.EndTime), "EndTime mismatch")
	assert.Equal(t, input.Location, got.Location)
	assert.Equal(t, input.StatusEmoji, got.StatusEmoji)
	require.NotNil(t, got.Lat)
	assert.InDelta(t, *input.Lat, *got.Lat, 1e-9)
	assert.Nil(t, got.FlightNumber, "non-flight segment should have no flight number")
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestSegmentRepo_Create_Flight(t *testing.T) {
	r := repo.NewSegmentRepo(newTestTx(t))
	ctx := context.Background()

	start := time.Date(2026, 5, 8, 22, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 9, 12, 0, 0, 0, time.UTC)
	got, err := r.Create(ctx, flightFixture("EK413", "SYD", "DXB", start, end))

	require.NoError(t, err)
	require.NotNil(t, got.FlightNumber)
	assert.Equal(t, "EK413", *got.FlightNumber)
	assert.True(t, got.IsFlying())
	assert.Nil(t, got.Lat, "flight segment stored without a fixed coordinate")
}

func TestSegmentRepo_List_OrderedByStartTime(t *testing.T) {
	r := repo.NewSegmentRepo(newTestTx(t))
	ctx := context.Background()

	// Insert out of chronological order; List must sort by start_time.
	later := segmentFixture()
	_, err := r.Create(ctx, later)
	require.NoError(t, err)

	flightStart := time.Date(2026, 5, 8, 22, 0, 0, 0, time.UTC)
	flightEnd := time.Date(2026, 5, 9, 12, 0, 0, 0, time.UTC)
	_, err = r.Create(ctx, flightFixture("EK413", "SYD", "DXB", flightStart, flightEnd))
	require.NoError(t, err)

	segments, err := r.List(ctx)

	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.True(t, segments[0].StartTime.Before(segments[1].StartTime),
		"segments should be ordered by start_time ascending")
	assert.True(t, segments[0].IsFlying())
}

func TestSegmentRepo_List_Empty(t *testing.T) {
	r := repo.NewSegmentRepo(newTestTx(t))

	segments, err := r.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, segments)
}
