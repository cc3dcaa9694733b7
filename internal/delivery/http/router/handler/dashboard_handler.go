package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"fairway/internal/delivery/http/middleware"
	"fairway/internal/delivery/http/response"
	"fairway/internal/usecase"
)

// DashboardHandler holds dependencies for the dashboard handler.
type DashboardHandler struct {
	uc     usecase.StatsUsecase
	logger *slog.Logger
}

// NewDashboardHandler is the constructor for DashboardHandler, injected by Fx.
func NewDashboardHandler(uc usecase.StatsUsecase, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		uc:     uc,
		logger: logger,
	}
}

// Dashboard returns the aggregated overview for the signed-in user.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	view, err := h.uc.Dashboard(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "")
}
