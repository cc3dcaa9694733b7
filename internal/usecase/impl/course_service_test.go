package impl

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fairway/internal/domain/entity"
	domainerrors "fairway/internal/domain/errors"
	"fairway/internal/domain/repository"
	mockRepo "fairway/internal/mocks/repository"
	mockSvc "fairway/internal/mocks/service"
	"fairway/internal/usecase"
)

type courseServiceFixtures struct {
	service  usecase.CourseUsecase
	courses  *mockRepo.MockCourseRepository
	profiles *mockRepo.MockProfileRepository
}

func createTestCourseService(t *testing.T) courseServiceFixtures {
	t.Helper()

	courses := mockRepo.NewMockCourseRepository()
	profiles := mockRepo.NewMockProfileRepository()
	service := NewCourseService(courses, profiles, mockSvc.NewMockNotifier(), discardLogger())

	return courseServiceFixtures{
		service:  service,
		courses:  courses,
		profiles: profiles,
	}
}

func TestCourseService_AddCourse(t *testing.T) {
	fx := createTestCourseService(t)
	ctx := context.Background()

	fx.courses.On("Create", ctx, "uid-1", mock.AnythingOfType("*entity.Course")).Return("course-1", nil)
	fx.profiles.On("RecordCourseAdded", ctx, "uid-1").Return(nil)

	course, err := fx.service.AddCourse(ctx, "uid-1", &usecase.AddCourseInput{
		Name:     "Pebble Beach",
		Location: "Pebble Beach, CA",
		Country:  "USA",
		Lat:      36.5725,
		Lng:      -121.9486,
	})
	require.NoError(t, err)
	assert.Equal(t, "course-1", course.ID)
	assert.Equal(t, "uid-1", course.AddedByID)
	assert.NotEmpty(t, course.AddedOn)
	assert.Zero(t, course.TimesPlayed)
	fx.profiles.AssertCalled(t, "RecordCourseAdded", ctx, "uid-1")
}

func TestCourseService_ListCourses_Filter(t *testing.T) {
	fx := createTestCourseService(t)
	ctx := context.Background()

	fx.courses.On("ListAll", ctx, "uid-1").Return([]*entity.Course{
		{ID: "a", Name: "Pebble Beach", Location: "California"},
		{ID: "b", Name: "Old Course", Location: "St Andrews"},
	}, nil)

	all, err := fx.service.ListCourses(ctx, "uid-1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := fx.service.ListCourses(ctx, "uid-1", "andrews")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "b", filtered[0].ID)
}

func TestCourseService_UpdateCourse_PartialEdit(t *testing.T) {
	fx := createTestCourseService(t)
	ctx := context.Background()

	fx.courses.On("Find", ctx, "uid-1", "course-1").Return(&entity.Course{
		ID: "course-1", Name: "Old Name", Location: "Somewhere", TimesPlayed: 4,
	}, nil)
	fx.courses.On("Update", ctx, "uid-1", mock.AnythingOfType("*entity.Course")).Return(nil)

	name := "New Name"
	course, err := fx.service.UpdateCourse(ctx, "uid-1", "course-1", &usecase.UpdateCourseInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New Name", course.Name)
	assert.Equal(t, "Somewhere", course.Location)
	assert.Equal(t, int64(4), course.TimesPlayed)
}

func TestCourseService_DeleteCourse_RejectsPlayedCourse(t *testing.T) {
	fx := createTestCourseService(t)
	ctx := context.Background()

	fx.courses.On("Find", ctx, "uid-1", "course-1").Return(&entity.Course{
		ID: "course-1", Name: "Played Course", TimesPlayed: 2,
	}, nil)

	err := fx.service.DeleteCourse(ctx, "uid-1", "course-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	fx.courses.AssertNotCalled(t, "Delete", ctx, "uid-1", "course-1")
}

func TestCourseService_GetCourse_NotFound(t *testing.T) {
	fx := createTestCourseService(t)
	ctx := context.Background()

	fx.courses.On("Find", ctx, "uid-1", "missing").Return(nil, repository.ErrCourseNotFound)

	_, err := fx.service.GetCourse(ctx, "uid-1", "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCourseNotFound))
}
