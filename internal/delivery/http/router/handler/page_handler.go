package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"fairway/internal/delivery/http/guard"
	"fairway/internal/delivery/http/response"
	"fairway/internal/usecase"
)

// PageHandler resolves navigation requests through the route guard.
type PageHandler struct {
	session usecase.SessionUsecase
	logger  *slog.Logger
}

// NewPageHandler is the constructor for PageHandler, injected by Fx.
func NewPageHandler(session usecase.SessionUsecase, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		session: session,
		logger:  logger,
	}
}

// NavigationResult is the guard's answer for a requested page.
type NavigationResult struct {
	Requested string `json:"requested"`
	Resolved  string `json:"resolved"`
	Redirect  bool   `json:"redirect"`
	Status    string `json:"status"`
}

// Resolve answers where a requested path actually leads for the current
// session. The client asks this on every navigation and whenever the session
// stream reports a state change.
func (h *PageHandler) Resolve(c echo.Context) error {
	requested := c.QueryParam("path")
	if requested == "" {
		requested = guard.PathDashboard
	}

	snapshot := h.session.Snapshot()
	decision := guard.Decide(requested, snapshot.Status)

	return response.Success(c, http.StatusOK, NavigationResult{
		Requested: requested,
		Resolved:  decision.Path,
		Redirect:  decision.Redirect,
		Status:    snapshot.Status.String(),
	}, "")
}
