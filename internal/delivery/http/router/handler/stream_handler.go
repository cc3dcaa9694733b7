package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"fairway/internal/delivery/http/guard"
	"fairway/internal/delivery/http/middleware"
	"fairway/internal/domain/entity"
	"fairway/internal/domain/service"
	"fairway/internal/usecase"
)

// StreamHandler serves the websocket stream carrying toast notifications and
// session state changes.
type StreamHandler struct {
	session  usecase.SessionUsecase
	notifier service.Notifier
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewStreamHandler is the constructor for StreamHandler, injected by Fx.
func NewStreamHandler(session usecase.SessionUsecase, notifier service.Notifier, logger *slog.Logger) *StreamHandler {
	return &StreamHandler{
		session:  session,
		notifier: notifier,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect cross-origin in development.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// streamEvent is one message on the stream.
type streamEvent struct {
	Type         string               `json:"type"` // "notification" or "session"
	Notification *entity.Notification `json:"notification,omitempty"`
	Session      *sessionEvent        `json:"session,omitempty"`
}

// sessionEvent reports a session state change plus where the current page
// should navigate, so a sign-out mid-view redirects immediately.
type sessionEvent struct {
	Status   string `json:"status"`
	Resolved string `json:"resolved"`
	Redirect bool   `json:"redirect"`
}

// Stream upgrades to a websocket and forwards the user's notifications and
// session state changes until the client disconnects.
func (h *StreamHandler) Stream(c echo.Context) error {
	uid := middleware.UID(c)
	currentPath := c.QueryParam("path")
	if currentPath == "" {
		currentPath = guard.PathDashboard
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Wrap(err, "failed to upgrade connection")
	}
	defer conn.Close()

	notifications, cancelNotifications := h.notifier.Subscribe(uid)
	defer cancelNotifications()

	sessions, cancelSessions := h.session.Subscribe()
	defer cancelSessions()

	// Reader goroutine: we never expect client messages, but reading is
	// what surfaces the disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	h.logger.Debug("Stream opened", "uid", uid)

	for {
		select {
		case <-done:
			return nil
		case notification, ok := <-notifications:
			if !ok {
				return nil
			}
			if err := conn.WriteJSON(streamEvent{Type: "notification", Notification: &notification}); err != nil {
				return nil
			}
		case snapshot, ok := <-sessions:
			if !ok {
				return nil
			}
			decision := guard.Decide(currentPath, snapshot.Status)
			event := streamEvent{Type: "session", Session: &sessionEvent{
				Status:   snapshot.Status.String(),
				Resolved: decision.Path,
				Redirect: decision.Redirect,
			}}
			if err := conn.WriteJSON(event); err != nil {
				return nil
			}
		}
	}
}
