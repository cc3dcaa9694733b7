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

// RoundHandler holds dependencies for round handlers.
type RoundHandler struct {
	uc     usecase.RoundUsecase
	logger *slog.Logger
}

// NewRoundHandler is the constructor for RoundHandler, injected by Fx.
func NewRoundHandler(uc usecase.RoundUsecase, logger *slog.Logger) *RoundHandler {
	return &RoundHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListRounds returns the user's rounds, optionally filtered with ?q=.
func (h *RoundHandler) ListRounds(c echo.Context) error {
	rounds, err := h.uc.ListRounds(c.Request().Context(), middleware.UID(c), c.QueryParam("q"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rounds, "")
}

// AddRound logs a round.
func (h *RoundHandler) AddRound(c echo.Context) error {
	var input *usecase.AddRoundInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid round input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	round, err := h.uc.AddRound(c.Request().Context(), middleware.UID(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, round, "Round logged")
}

// UploadPhoto stores a round photo and returns its URL for a later AddRound.
func (h *RoundHandler) UploadPhoto(c echo.Context) error {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Missing photo upload")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open upload")
	}
	defer file.Close()

	url, err := h.uc.UploadPhoto(c.Request().Context(), middleware.UID(c), &usecase.PhotoUpload{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		Body:     file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{"url": url}, "Photo uploaded")
}
