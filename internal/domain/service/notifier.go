package service

import "fairway/internal/domain/entity"

// Notifier is the in-memory publish/subscribe channel for transient
// user-facing messages. Delivery is best-effort: a subscriber that falls
// behind loses messages rather than blocking publishers.
type Notifier interface {
	// Publish fans a notification out to the user's subscribers.
	Publish(userID string, level entity.NotificationLevel, text string)

	// Subscribe registers for a user's notifications. The returned cancel
	// function must be called to release the subscription.
	Subscribe(userID string) (<-chan entity.Notification, func())

	// Close shuts the hub down and closes all subscriber channels.
	Close()
}
