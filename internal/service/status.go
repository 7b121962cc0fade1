package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andiyar/wheresben/internal/domain"
	"github.com/andiyar/wheresben/internal/repo"
)

// maxOverrideLifetime caps how far in the future a posted status can
// expire. A fat-fingered lifetime should not pin a stale status for days.
const maxOverrideLifetime = 24 * time.Hour

// StatusService implements business logic for the manual status override:
// posting, clearing, and reading the active one. Posting also fans out a
// notification record via the Notifier.
type StatusService struct {
	overrides repo.OverrideRepo
	notifier  *Notifier
}

// NewStatusService constructs a StatusService backed by the provided repo.
// notifier may be nil, in which case posts skip notification fan-out.
func NewStatusService(overrides repo.OverrideRepo, notifier *Notifier) *StatusService {
	return &StatusService{overrides: overrides, notifier: notifier}
}

// Active returns the override in force at the given instant.
// Returns domain.ErrNotFound when there is none or it has expired.
func (s *StatusService) Active(ctx context.Context, now time.Time) (domain.StatusOverride, error) {
	o, err := s.overrides.GetActive(ctx, now)
	if err != nil {
		return domain.StatusOverride{}, fmt.Errorf("service.StatusService.Active: %w", err)
	}
	return o, nil
}

// Post validates a draft and upserts it as the single override row, with
// id fixed and expiry defaulted to six hours from now. The persisted
// override is returned; a notification record is fanned out best-effort
// (a fan-out failure never fails the post).
// Returns domain.ErrValidation when the draft violates business rules.
func (s *StatusService) Post(ctx context.Context, draft domain.OverrideDraft, now time.Time) (domain.StatusOverride, error) {
	if err := validateDraft(draft); err != nil {
		return domain.StatusOverride{}, err
	}

	lifetime := draft.Lifetime
	if lifetime == 0 {
		lifetime = domain.DefaultOverrideLifetime
	}

	o := domain.StatusOverride{
		ID:          domain.OverrideID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(lifetime),
		StatusEmoji: draft.StatusEmoji,
		StatusText:  draft.StatusText,
		KidsText:    draft.KidsText,
		Note:        draft.Note,
		Lat:         draft.Lat,
		Lng:         draft.Lng,
	}

	result, err := s.overrides.Upsert(ctx, o)
	if err != nil {
		return domain.StatusOverride{}, fmt.Errorf("service.StatusService.Post: %w", err)
	}

	if s.notifier != nil {
		s.notifier.StatusPosted(ctx, result)
	}

	return result, nil
}

// Clear removes the override early so the itinerary takes over again.
// Returns domain.ErrNotFound when there was nothing to clear.
func (s *StatusService) Clear(ctx context.Context) error {
	if err := s.overrides.Delete(ctx); err != nil {
		return fmt.Errorf("service.StatusService.Clear: %w", err)
	}
	return nil
}

// validateDraft enforces business rules on a posted status.
//   - Emoji, status text, and kids text must all be non-empty.
//   - Lat and lng must be given together or not at all.
//   - The lifetime must be positive and no more than 24 hours.
func validateDraft(draft domain.OverrideDraft) error {
	if strings.TrimSpace(draft.StatusEmoji) == "" {
		return fmt.Errorf("%w: status_emoji is required", domain.ErrValidation)
	}
	if strings.TrimSpace(draft.StatusText) == "" {
		return fmt.Errorf("%w: status_text is required", domain.ErrValidation)
	}
	if strings.TrimSpace(draft.KidsText) == "" {
		return fmt.Errorf("%w: kids_text is required", domain.ErrValidation)
	}
	if (draft.Lat == nil) != (draft.Lng == nil) {
		return fmt.Errorf("%w: lat and lng must be provided together", domain.ErrValidation)
	}
	if draft.Lifetime < 0 {
		return fmt.Errorf("%w: lifetime must be positive", domain.ErrValidation)
	}
	if draft.Lifetime > maxOverrideLifetime {
		return fmt.Errorf("%w: lifetime must not exceed 24 hours", domain.ErrValidation)
	}
	return nil
}
