package repository

import (
	"context"
	"errors"

	"fairway/internal/domain/entity"
)

// ErrCourseNotFound is returned when a course document does not exist under
// the given user.
var ErrCourseNotFound = errors.New("course not found")

// CourseRepository defines the operations for a user's played-course records.
// Courses are scoped under a profile; there is no global catalog.
type CourseRepository interface {
	// Find retrieves a single course by id.
	Find(ctx context.Context, uid, courseID string) (*entity.Course, error)

	// ListRecent returns up to limit courses ordered by lastPlayed descending.
	ListRecent(ctx context.Context, uid string, limit int) ([]*entity.Course, error)

	// ListAll returns every course ordered by lastPlayed descending.
	ListAll(ctx context.Context, uid string) ([]*entity.Course, error)

	// Create persists a new course and returns its generated id.
	Create(ctx context.Context, uid string, course *entity.Course) (string, error)

	// Update replaces an existing course document in place.
	Update(ctx context.Context, uid string, course *entity.Course) error

	// RecordPlay atomically increments timesPlayed and stamps lastPlayed.
	RecordPlay(ctx context.Context, uid, courseID, playedDate string) error

	// Delete removes a single course document.
	Delete(ctx context.Context, uid, courseID string) error

	// DeleteAll removes every course document for the user and reports how
	// many were removed before any failure.
	DeleteAll(ctx context.Context, uid string) (int, error)
}
