package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"

	"fairway/internal/domain/entity"
	domainerrors "fairway/internal/domain/errors"
	"fairway/internal/domain/repository"
	"fairway/internal/domain/service"
	"fairway/internal/usecase"
)

// courseService implements the CourseUsecase interface.
type courseService struct {
	courses  repository.CourseRepository
	profiles repository.ProfileRepository
	notifier service.Notifier
	logger   *slog.Logger
}

// NewCourseService is the constructor for courseService.
func NewCourseService(
	courses repository.CourseRepository,
	profiles repository.ProfileRepository,
	notifier service.Notifier,
	logger *slog.Logger,
) usecase.CourseUsecase {
	return &courseService{
		courses:  courses,
		profiles: profiles,
		notifier: notifier,
		logger:   logger,
	}
}

// GetCourse retrieves a single course.
func (srv *courseService) GetCourse(ctx context.Context, uid, courseID string) (*entity.Course, error) {
	course, err := srv.courses.Find(ctx, uid, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCourseNotFound, courseID)
		}

		return nil, errors.Wrap(err, "failed to get course")
	}

	return course, nil
}

// ListCourses returns every course, most recently played first. A non-empty
// filter narrows by a case-insensitive contains match on name and location.
func (srv *courseService) ListCourses(ctx context.Context, uid, filter string) ([]*entity.Course, error) {
	courses, err := srv.courses.ListAll(ctx, uid)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list courses")
	}

	if filter == "" {
		return courses, nil
	}

	needle := strings.ToLower(filter)
	filtered := make([]*entity.Course, 0, len(courses))
	for _, course := range courses {
		if strings.Contains(strings.ToLower(course.Name), needle) ||
			strings.Contains(strings.ToLower(course.Location), needle) {
			filtered = append(filtered, course)
		}
	}

	return filtered, nil
}

// AddCourse creates a course record and bumps the profile course counter.
func (srv *courseService) AddCourse(ctx context.Context, uid string, input *usecase.AddCourseInput) (*entity.Course, error) {
	course := &entity.Course{
		Name:      input.Name,
		Location:  input.Location,
		Address:   input.Address,
		Lat:       input.Lat,
		Lng:       input.Lng,
		State:     input.State,
		Country:   input.Country,
		Rating:    input.Rating,
		AddedByID: uid,
		AddedOn:   time.Now().UTC().Format(time.RFC3339),
	}

	id, err := srv.courses.Create(ctx, uid, course)
	if err != nil {
		srv.notifier.Publish(uid, entity.NotificationError, "Failed to add course.")

		return nil, errors.Wrap(err, "failed to create course")
	}
	course.ID = id

	if err := srv.profiles.RecordCourseAdded(ctx, uid); err != nil {
		// The course exists; the counter will drift by one. Flag it rather
		// than failing the whole operation.
		srv.logger.Warn("Course counter increment failed", "uid", uid, "course_id", id, "error", err)
	}

	srv.notifier.Publish(uid, entity.NotificationSuccess, "Course added: "+course.Name)

	return course, nil
}

// UpdateCourse edits a course in place, leaving play counters untouched.
func (srv *courseService) UpdateCourse(ctx context.Context, uid, courseID string, input *usecase.UpdateCourseInput) (*entity.Course, error) {
	course, err := srv.GetCourse(ctx, uid, courseID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		course.Name = *input.Name
	}
	if input.Location != nil {
		course.Location = *input.Location
	}
	if input.Address != nil {
		course.Address = *input.Address
	}
	if input.Lat != nil {
		course.Lat = *input.Lat
	}
	if input.Lng != nil {
		course.Lng = *input.Lng
	}
	if input.State != nil {
		course.State = *input.State
	}
	if input.Country != nil {
		course.Country = *input.Country
	}
	if input.Rating != nil {
		course.Rating = input.Rating
	}

	if err := srv.courses.Update(ctx, uid, course); err != nil {
		srv.notifier.Publish(uid, entity.NotificationError, "Failed to save course changes.")

		return nil, errors.Wrap(err, "failed to update course")
	}

	srv.notifier.Publish(uid, entity.NotificationSuccess, "Course updated: "+course.Name)

	return course, nil
}

// DeleteCourse removes a course. Courses with logged rounds keep the history
// they anchor and cannot be deleted.
func (srv *courseService) DeleteCourse(ctx context.Context, uid, courseID string) error {
	course, err := srv.GetCourse(ctx, uid, courseID)
	if err != nil {
		return err
	}

	if course.TimesPlayed > 0 {
		return errors.Wrap(domainerrors.ErrValidationFailed, "course has logged rounds and cannot be deleted")
	}

	if err := srv.courses.Delete(ctx, uid, courseID); err != nil {
		return errors.Wrap(err, "failed to delete course")
	}

	srv.notifier.Publish(uid, entity.NotificationSuccess, "Course removed: "+course.Name)

	return nil
}
