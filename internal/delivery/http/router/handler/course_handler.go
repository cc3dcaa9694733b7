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

// CourseHandler holds dependencies for course handlers.
type CourseHandler struct {
	uc     usecase.CourseUsecase
	logger *slog.Logger
}

// NewCourseHandler is the constructor for CourseHandler, injected by Fx.
func NewCourseHandler(uc usecase.CourseUsecase, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListCourses returns the user's courses, optionally filtered with ?q=.
func (h *CourseHandler) ListCourses(c echo.Context) error {
	courses, err := h.uc.ListCourses(c.Request().Context(), middleware.UID(c), c.QueryParam("q"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, courses, "")
}

// GetCourse returns a single course.
func (h *CourseHandler) GetCourse(c echo.Context) error {
	course, err := h.uc.GetCourse(c.Request().Context(), middleware.UID(c), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, course, "")
}

// AddCourse creates a course.
func (h *CourseHandler) AddCourse(c echo.Context) error {
	var input *usecase.AddCourseInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid course input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	course, err := h.uc.AddCourse(c.Request().Context(), middleware.UID(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, course, "Course added")
}

// UpdateCourse edits a course in place.
func (h *CourseHandler) UpdateCourse(c echo.Context) error {
	var input *usecase.UpdateCourseInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid course input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	course, err := h.uc.UpdateCourse(c.Request().Context(), middleware.UID(c), c.Param("id"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, course, "Course updated")
}

// DeleteCourse removes an unplayed course.
func (h *CourseHandler) DeleteCourse(c echo.Context) error {
	if err := h.uc.DeleteCourse(c.Request().Context(), middleware.UID(c), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Course removed")
}
