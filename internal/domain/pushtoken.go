package domain

import (
	"time"

	"github.com/google/uuid"
)

// PushToken registers one device for status notifications. Registration
// upserts on DeviceID so a device re-registering with a fresh token
// replaces its old row. Actual push delivery is handled out of band.
type PushToken struct {
	ID        uuid.UUID `json:"id"`
	DeviceID  string    `json:"device_id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SentNotification records one notification fan-out so repeated triggers
// for the same event are not re-sent. TriggerID is unique per event.
type SentNotification struct {
	ID          int       `json:"id"`
	TriggerType string    `json:"trigger_type"`
	TriggerID   string    `json:"trigger_id"`
	SentAt      time.Time `json:"sent_at"`
}
