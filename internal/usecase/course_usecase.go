package usecase

import (
	"context"

	"fairway/internal/domain/entity"
)

// CourseUsecase defines the business operations on a user's played courses.
type CourseUsecase interface {
	// GetCourse retrieves a single course.
	GetCourse(ctx context.Context, uid, courseID string) (*entity.Course, error)

	// ListCourses returns every course, most recently played first,
	// optionally narrowed by a contains filter on name and location.
	ListCourses(ctx context.Context, uid, filter string) ([]*entity.Course, error)

	// AddCourse creates a course record and bumps the profile course counter.
	AddCourse(ctx context.Context, uid string, input *AddCourseInput) (*entity.Course, error)

	// UpdateCourse edits a course in place.
	UpdateCourse(ctx context.Context, uid, courseID string, input *UpdateCourseInput) (*entity.Course, error)

	// DeleteCourse removes a course. Only unplayed courses may be deleted.
	DeleteCourse(ctx context.Context, uid, courseID string) error
}

// AddCourseInput defines the data required to add a course.
type AddCourseInput struct {
	Name     string   `json:"name" validate:"required"`
	Location string   `json:"location" validate:"required"`
	Address  string   `json:"address"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	State    string   `json:"state"`
	Country  string   `json:"country" validate:"required"`
	Rating   *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

// UpdateCourseInput defines the data for an in-place course edit. Nil fields
// are left untouched.
type UpdateCourseInput struct {
	Name     *string  `json:"name,omitempty"`
	Location *string  `json:"location,omitempty"`
	Address  *string  `json:"address,omitempty"`
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
	State    *string  `json:"state,omitempty"`
	Country  *string  `json:"country,omitempty"`
	Rating   *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}
