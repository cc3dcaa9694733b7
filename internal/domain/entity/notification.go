package entity

import "time"

// NotificationLevel classifies a transient user-facing message.
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
	NotificationWarning NotificationLevel = "warning"
	NotificationInfo    NotificationLevel = "info"
)

// Notification is an ephemeral message surfaced to the user, e.g. "Round
// added" or "Failed to upload photo". It is delivered best-effort through the
// in-memory notification channel and never persisted.
type Notification struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Level     NotificationLevel `json:"level"`
	Text      string            `json:"text"`
	CreatedAt time.Time         `json:"createdAt"`
}
