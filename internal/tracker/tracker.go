// Package tracker owns the in-memory snapshot of trip data and the
// polling loop that keeps it fresh. Resolution reads only the snapshot,
// so a database outage degrades to serving the last good data rather
// than failing requests.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/andiyar/wheresben/internal/domain"
	"github.com/andiyar/wheresben/internal/status"
)

// TripSource is the itinerary/config read surface the tracker polls.
// *service.TripService satisfies it.
type TripSource interface {
	Segments(ctx context.Context) ([]domain.TripSegment, error)
	Config(ctx context.Context) (domain.TripConfig, error)
}

// OverrideSource is the override read surface the tracker polls.
// *service.StatusService satisfies it.
type OverrideSource interface {
	Active(ctx context.Context, now time.Time) (domain.StatusOverride, error)
}

// Snapshot is one wholesale copy of everything resolution needs. It is
// replaced atomically on every successful refresh and never mutated.
type Snapshot struct {
	Segments  []domain.TripSegment
	Config    domain.TripConfig
	Override  *domain.StatusOverride
	FetchedAt time.Time
}

// Options tune a Tracker. The zero value of each field falls back to a
// sane default.
type Options struct {
	// Interval between polls. Defaults to 30 seconds.
	Interval time.Duration
	// Offset shifts the tracker's clock for trip rehearsal. Defaults to 0.
	Offset time.Duration
	// Clock supplies "now"; defaults to time.Now. Tests inject a fake.
	Clock func() time.Time
}

// Tracker polls the trip data on a ticker and serves resolved statuses
// from the held snapshot. Single writer (the poll loop), many readers.
type Tracker struct {
	trips     TripSource
	overrides OverrideSource
	log       *slog.Logger

	interval time.Duration
	offset   time.Duration
	clock    func() time.Time

	mu     sync.RWMutex
	snap   Snapshot
	loaded bool
}

// New constructs a Tracker. Run or Refresh must be called before the
// first Current read returns anything but the pre-trip sentinel.
func New(trips TripSource, overrides OverrideSource, log *slog.Logger, opts Options) *Tracker {
	if opts.Interval <= 0 {
		opts.Interval = 30 * time.Second
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Tracker{
		trips:     trips,
		overrides: overrides,
		log:       log,
		interval:  opts.Interval,
		offset:    opts.Offset,
		clock:     opts.Clock,
	}
}

// Now is the tracker's idea of the current instant: the clock plus the
// configured rehearsal offset.
func (t *Tracker) Now() time.Time {
	return t.clock().Add(t.offset)
}

// Run polls until ctx is cancelled: one immediate refresh, then one per
// interval. A failed refresh is logged and the previous snapshot stays in
// force until the next tick.
func (t *Tracker) Run(ctx context.Context) {
	if err := t.Refresh(ctx); err != nil {
		t.log.Warn("initial snapshot load failed", "error", err)
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.log.Info("tracker stopped")
			return
		case <-ticker.C:
			if err := t.Refresh(ctx); err != nil {
				t.log.Warn("snapshot refresh failed, keeping previous snapshot", "error", err)
			}
		}
	}
}

// Refresh fetches segments, config, and the active override concurrently
// and swaps in a new snapshot. On any fetch error the held snapshot is
// left untouched. Itinerary defects are logged, never fatal.
func (t *Tracker) Refresh(ctx context.Context) error {
	now := t.Now()

	var (
		segments []domain.TripSegment
		cfg      domain.TripConfig
		override *domain.StatusOverride
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		segments, err = t.trips.Segments(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cfg, err = t.trips.Config(gctx)
		return err
	})
	g.Go(func() error {
		o, err := t.overrides.Active(gctx, now)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil // no active override is a valid empty state
			}
			return err
		}
		override = &o
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("tracker.Refresh: %w", err)
	}

	for _, p := range status.ValidateSegments(segments) {
		t.log.Warn("itinerary defect", "segment_id", p.SegmentID, "problem", p.Message)
	}

	t.mu.Lock()
	t.snap = Snapshot{
		Segments:  segments,
		Config:    cfg,
		Override:  override,
		FetchedAt: now,
	}
	t.loaded = true
	t.mu.Unlock()

	return nil
}

// Snapshot returns the currently held snapshot and whether any load has
// succeeded yet.
func (t *Tracker) Snapshot() (Snapshot, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snap, t.loaded
}

// Current resolves the status at the given instant from the held
// snapshot. Before the first successful load this is the pre-trip
// sentinel (empty snapshot), matching the resolver's empty-list branch.
func (t *Tracker) Current(at time.Time) domain.CurrentStatus {
	snap, _ := t.Snapshot()
	return status.Resolve(snap.Segments, snap.Override, at)
}
