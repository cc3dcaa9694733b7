// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"fairway/internal/delivery/http/response"
	"fairway/internal/usecase"
)

// AuthHandler holds dependencies for sign-in and session handlers.
type AuthHandler struct {
	uc     usecase.SessionUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.SessionUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// GoogleSignInRequest carries the Google-federated ID token.
type GoogleSignInRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// SignInWithGoogle handles federated sign-in.
func (h *AuthHandler) SignInWithGoogle(c echo.Context) error {
	var req GoogleSignInRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign-in input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.uc.SignInWithGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Signed in")
}

// RequestPhoneCode starts phone sign-in.
func (h *AuthHandler) RequestPhoneCode(c echo.Context) error {
	var input *usecase.RequestPhoneCodeInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid phone input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	handle, err := h.uc.RequestPhoneCode(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"handle": handle}, "Verification code sent")
}

// ConfirmPhoneCode completes phone sign-in.
func (h *AuthHandler) ConfirmPhoneCode(c echo.Context) error {
	var input *usecase.ConfirmPhoneCodeInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid confirmation input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.uc.ConfirmPhoneCode(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Signed in")
}

// SignOut ends the session.
func (h *AuthHandler) SignOut(c echo.Context) error {
	if err := h.uc.SignOut(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Signed out")
}

// Session returns the current session snapshot.
func (h *AuthHandler) Session(c echo.Context) error {
	snapshot := h.uc.Snapshot()

	return response.Success(c, http.StatusOK, snapshot, "")
}
