package tracker_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andiyar/wheresben/internal/domain"
	"github.com/andiyar/wheresben/internal/tracker"
)

func strptr(s string) *string { return &s }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockTripSource struct {
	SegmentsFunc func(ctx context.Context) ([]domain.TripSegment, error)
	ConfigFunc   func(ctx context.Context) (domain.TripConfig, error)
}

func (m *mockTripSource) Segments(ctx context.Context) ([]domain.TripSegment, error) {
	return m.SegmentsFunc(ctx)
}

func (m *mockTripSource) Config(ctx context.Context) (domain.TripConfig, error) {
	return m.ConfigFunc(ctx)
}

type mockOverrideSource struct {
	ActiveFunc func(ctx context.Context, now time.Time) (domain.StatusOverride, error)
}

func (m *mockOverrideSource) Active(ctx context.Context, now time.Time) (domain.StatusOverride, error) {
	return m.ActiveFunc(ctx, now)
}

var (
	_ tracker.TripSource     = (*mockTripSource)(nil)
	_ tracker.OverrideSource = (*mockOverrideSource)(nil)
)

func hotelSegment(start, end time.Time) domain.TripSegment {
	return domain.TripSegment{
		ID:          1,
		StartTime:   start,
		EndTime:     end,
		Location:    "Prague",
		StatusEmoji: "🏨",
		StatusText:  "At the hotel",
		KidsText:    "Daddy is in Prague!",
	}
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestTracker_NowAppliesOffset(t *testing.T) {
	base := time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)
	tr := tracker.New(nil, nil, discardLogger(), tracker.Options{
		Clock:  fixedClock(base),
		Offset: 48 * time.Hour,
	})

	assert.Equal(t, base.Add(48*time.Hour), tr.Now())
}

func TestTracker_RefreshLoadsSnapshot(t *testing.T) {
	now := time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)
	seg := hotelSegment(now.Add(-time.Hour), now.Add(time.Hour))

	trips := &mockTripSource{
		SegmentsFunc: func(ctx context.Context) ([]domain.TripSegment, error) {
			return []domain.TripSegment{seg}, nil
		},
		ConfigFunc: func(ctx context.Context) (domain.TripConfig, error) {
			return domain.TripConfig{DadName: "Ben"}, nil
		},
	}
	overrides := &mockOverrideSource{
		ActiveFunc: func(ctx context.Context, at time.Time) (domain.StatusOverride, error) {
			assert.Equal(t, now, at)
			return domain.StatusOverride{}, fmt.Errorf("status.StatusService.Active: %w", domain.ErrNotFound)
		},
	}

	tr := tracker.New(trips, overrides, discardLogger(), tracker.Options{Clock: fixedClock(now)})

	_, ok := tr.Snapshot()
	require.False(t, ok)

	require.NoError(t, tr.Refresh(context.Background()))

	snap, ok := tr.Snapshot()
	require.True(t, ok)
	require.Len(t, snap.Segments, 1)
	assert.Nil(t, snap.Override)
	assert.Equal(t, "Ben", snap.Config.DadName)
	assert.Equal(t, now, snap.FetchedAt)

	got := tr.Current(tr.Now())
	assert.Equal(t, domain.SourceSegment, got.Source)
	assert.Equal(t, "At the hotel", got.Text)
}

func TestTracker_RefreshFailureKeepsSnapshot(t *testing.T) {
	now := time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)
	seg := hotelSegment(now.Add(-time.Hour), now.Add(time.Hour))

	healthy := true
	trips := &mockTripSource{
		SegmentsFunc: func(ctx context.Context) ([]domain.TripSegment, error) {
			if !healthy {
				return nil, fmt.Errorf("connection refused")
			}
			return []domain.TripSegment{seg}, nil
		},
		ConfigFunc: func(ctx context.Context) (domain.TripConfig, error) {
			return domain.TripConfig{}, nil
		},
	}
	overrides := &mockOverrideSource{
		ActiveFunc: func(ctx context.Context, at time.Time) (domain.StatusOverride, error) {
			return domain.StatusOverride{}, domain.ErrNotFound
		},
	}

	tr := tracker.New(trips, overrides, discardLogger(), tracker.Options{Clock: fixedClock(now)})
	require.NoError(t, tr.Refresh(context.Background()))

	healthy = false
	err := tr.Refresh(context.Background())
	require.Error(t, err)

	snap, ok := tr.Snapshot()
	require.True(t, ok)
	assert.Len(t, snap.Segments, 1, "failed refresh must not clobber the held snapshot")
}

func TestTracker_RefreshPicksUpOverride(t *testing.T) {
	now := time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)

	trips := &mockTripSource{
		SegmentsFunc: func(ctx context.Context) ([]domain.TripSegment, error) { return nil, nil },
		ConfigFunc:   func(ctx context.Context) (domain.TripConfig, error) { return domain.TripConfig{}, nil },
	}
	overrides := &mockOverrideSource{
		ActiveFunc: func(ctx context.Context, at time.Time) (domain.StatusOverride, error) {
			return domain.StatusOverride{
				ID:          domain.OverrideID,
				CreatedAt:   at.Add(-time.Minute),
				ExpiresAt:   at.Add(time.Hour),
				StatusEmoji: "🍺",
				StatusText:  "Out with colleagues",
				KidsText:    "Daddy is at dinner!",
				Note:        strptr("back by ten"),
			}, nil
		},
	}

	tr := tracker.New(trips, overrides, discardLogger(), tracker.Options{Clock: fixedClock(now)})
	require.NoError(t, tr.Refresh(context.Background()))

	got := tr.Current(tr.Now())
	require.Equal(t, domain.SourceOverride, got.Source)
	assert.Equal(t, "Out with colleagues", got.Text)
}

func TestTracker_CurrentBeforeFirstLoadIsPreTrip(t *testing.T) {
	tr := tracker.New(nil, nil, discardLogger(), tracker.Options{})
	got := tr.Current(time.Now())
	assert.Equal(t, domain.SourcePreTrip, got.Source)
}

func TestTracker_RunStopsOnCancel(t *testing.T) {
	now := time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)
	trips := &mockTripSource{
		SegmentsFunc: func(ctx context.Context) ([]domain.TripSegment, error) { return nil, nil },
		ConfigFunc:   func(ctx context.Context) (domain.TripConfig, error) { return domain.TripConfig{}, nil },
	}
	overrides := &mockOverrideSource{
		ActiveFunc: func(ctx context.Context, at time.Time) (domain.StatusOverride, error) {
			return domain.StatusOverride{}, domain.ErrNotFound
		},
	}

	tr := tracker.New(trips, overrides, discardLogger(), tracker.Options{
		Interval: 10 * time.Millisecond,
		Clock:    fixedClock(now),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tr.Run(ctx)
		close(done)
	}()

	// Let at least the initial refresh land, then stop the loop.
	require.Eventually(t, func() bool {
		_, ok := tr.Snapshot()
		return ok
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
