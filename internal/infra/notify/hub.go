// Package notify implements the in-memory notification hub.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"fairway/internal/domain/entity"
	"fairway/internal/domain/service"
)

// subscriberBuffer bounds how far a slow consumer may fall behind before
// messages are dropped for it.
const subscriberBuffer = 16

type hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*subscriber]struct{}
	closed      bool
	logger      *slog.Logger
}

type subscriber struct {
	ch chan entity.Notification
}

// HubParams holds dependencies for the notification hub, injected by Fx.
type HubParams struct {
	fx.In
	fx.Lifecycle

	Logger *slog.Logger
}

// NewHub is the constructor for the notification hub.
func NewHub(params HubParams) service.Notifier {
	h := &hub{
		subscribers: make(map[string]map[*subscriber]struct{}),
		logger:      params.Logger,
	}

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			h.Close()

			return nil
		},
	})

	return h
}

// Publish fans a notification out to the user's subscribers. Subscribers with
// full buffers are skipped; publishers never block.
func (h *hub) Publish(userID string, level entity.NotificationLevel, text string) {
	notification := entity.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Level:     level,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	for sub := range h.subscribers[userID] {
		select {
		case sub.ch <- notification:
		default:
			h.logger.Warn("Notification dropped for slow subscriber",
				slog.String("user_id", userID),
				slog.String("level", string(level)))
		}
	}
}

// Subscribe registers for a user's notifications.
func (h *hub) Subscribe(userID string) (<-chan entity.Notification, func()) {
	sub := &subscriber{ch: make(chan entity.Notification, subscriberBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(sub.ch)

		return sub.ch, func() {}
	}

	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[*subscriber]struct{})
	}
	h.subscribers[userID][sub] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()

			if set, ok := h.subscribers[userID]; ok {
				delete(set, sub)
				if len(set) == 0 {
					delete(h.subscribers, userID)
				}
				close(sub.ch)
			}
		})
	}

	return sub.ch, cancel
}

// Close shuts the hub down and closes all subscriber channels.
func (h *hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for userID, set := range h.subscribers {
		for sub := range set {
			close(sub.ch)
		}
		delete(h.subscribers, userID)
	}
}
