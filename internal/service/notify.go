package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/andiyar/wheresben/internal/domain"
	"github.com/andiyar/wheresben/internal/repo"
)

// Notifier records notification fan-outs for posted statuses and registers
// devices for them. Actual push delivery (APNs) happens out of band; this
// service owns the ledger that keeps each trigger from being sent twice
// and logs the payload that would go out.
type Notifier struct {
	tokens repo.PushTokenRepo
	log    *slog.Logger
}

// NewNotifier constructs a Notifier backed by the provided repo.
func NewNotifier(tokens repo.PushTokenRepo, log *slog.Logger) *Notifier {
	return &Notifier{tokens: tokens, log: log}
}

// RegisterDevice upserts a device registration so it receives future
// status notifications. Returns domain.ErrValidation when either field
// is empty.
func (n *Notifier) RegisterDevice(ctx context.Context, deviceID, token string) (domain.PushToken, error) {
	if strings.TrimSpace(deviceID) == "" {
		return domain.PushToken{}, fmt.Errorf("%w: device_id is required", domain.ErrValidation)
	}
	if strings.TrimSpace(token) == "" {
		return domain.PushToken{}, fmt.Errorf("%w: token is required", domain.ErrValidation)
	}
	result, err := n.tokens.Upsert(ctx, deviceID, token)
	if err != nil {
		return domain.PushToken{}, fmt.Errorf("service.Notifier.RegisterDevice: %w", err)
	}
	return result, nil
}

// StatusPosted fans out a freshly posted override: it records the trigger
// in the sent ledger and logs the notification payload per registered
// device. Fan-out is best-effort — errors are logged, never returned —
// because a failed notification must not fail the status post itself.
func (n *Notifier) StatusPosted(ctx context.Context, o domain.StatusOverride) {
	triggerID := fmt.Sprintf("status-%d", o.CreatedAt.Unix())

	inserted, err := n.tokens.RecordSent(ctx, "status", triggerID)
	if err != nil {
		n.log.WarnContext(ctx, "recording notification failed", "trigger_id", triggerID, "error", err)
		return
	}
	if !inserted {
		n.log.DebugContext(ctx, "notification already sent", "trigger_id", triggerID)
		return
	}

	tokens, err := n.tokens.List(ctx)
	if err != nil {
		n.log.WarnContext(ctx, "listing push tokens failed", "trigger_id", triggerID, "error", err)
		return
	}

	body := fmt.Sprintf("%s %s", o.StatusEmoji, o.StatusText)
	if o.Note != nil && *o.Note != "" {
		body = *o.Note
	}

	n.log.InfoContext(ctx, "status notification queued",
		"trigger_id", triggerID,
		"devices", len(tokens),
		"title", "Ben says:",
		"body", body,
	)
}
