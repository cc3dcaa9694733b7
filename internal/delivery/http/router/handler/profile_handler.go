package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"fairway/internal/delivery/http/response"
	"fairway/internal/domain/entity"
	"fairway/internal/usecase"
)

// ProfileHandler holds dependencies for profile handlers.
type ProfileHandler struct {
	session usecase.SessionUsecase
	rounds  usecase.RoundUsecase
	logger  *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(session usecase.SessionUsecase, rounds usecase.RoundUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		session: session,
		rounds:  rounds,
		logger:  logger,
	}
}

// GetProfile returns the signed-in user's profile from the session store.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	snapshot := h.session.Snapshot()
	if snapshot.Profile == nil {
		return response.NotFound(c, "NOT_FOUND", "Profile not loaded")
	}

	return response.Success(c, http.StatusOK, snapshot.Profile, "")
}

// UpdateProfile applies a partial profile edit.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var update *entity.ProfileUpdate
	if err := c.Bind(&update); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	profile, err := h.session.UpdateProfile(c.Request().Context(), update)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Profile updated")
}

// UploadProfilePhoto stores a profile photo and applies it to the profile.
func (h *ProfileHandler) UploadProfilePhoto(c echo.Context) error {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Missing photo upload")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open upload")
	}
	defer file.Close()

	snapshot := h.session.Snapshot()
	if snapshot.Identity == nil {
		return response.Unauthorized(c, "NOT_AUTHENTICATED", "Sign in required")
	}

	url, err := h.rounds.UploadPhoto(c.Request().Context(), snapshot.Identity.UID, &usecase.PhotoUpload{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		Body:     file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	profile, err := h.session.UpdateProfile(c.Request().Context(), &entity.ProfileUpdate{PhotoURL: &url})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Profile photo updated")
}

// DeleteAccount removes all user data and the identity.
func (h *ProfileHandler) DeleteAccount(c echo.Context) error {
	if err := h.session.DeleteAccount(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Account deleted")
}
