package impl

import (
	"context"
	"strings"
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

type roundServiceFixtures struct {
	service  usecase.RoundUsecase
	rounds   *mockRepo.MockRoundRepository
	courses  *mockRepo.MockCourseRepository
	profiles *mockRepo.MockProfileRepository
	photos   *mockSvc.MockPhotoStore
}

func createTestRoundService(t *testing.T) roundServiceFixtures {
	t.Helper()

	rounds := mockRepo.NewMockRoundRepository()
	courses := mockRepo.NewMockCourseRepository()
	profiles := mockRepo.NewMockProfileRepository()
	photos := mockSvc.NewMockPhotoStore()
	service := NewRoundService(rounds, courses, profiles, photos, mockSvc.NewMockNotifier(), discardLogger())

	return roundServiceFixtures{
		service:  service,
		rounds:   rounds,
		courses:  courses,
		profiles: profiles,
		photos:   photos,
	}
}

func TestRoundService_AddRound(t *testing.T) {
	fx := createTestRoundService(t)
	ctx := context.Background()

	fx.courses.On("Find", ctx, "uid-1", "course-1").Return(&entity.Course{
		ID: "course-1", Name: "Pebble Beach",
	}, nil)
	fx.rounds.On("Create", ctx, "uid-1", mock.AnythingOfType("*entity.Round")).Return("round-1", nil)
	fx.courses.On("RecordPlay", ctx, "uid-1", "course-1", "2026-08-30").Return(nil)
	fx.profiles.On("RecordRound", ctx, "uid-1", "2026-08-30").Return(nil)

	score := 82
	round, err := fx.service.AddRound(ctx, "uid-1", &usecase.AddRoundInput{
		CourseID: "course-1",
		Date:     "2026-08-30",
		Score:    &score,
	})
	require.NoError(t, err)
	assert.Equal(t, "round-1", round.ID)
	assert.Equal(t, "Pebble Beach", round.CourseName)
	assert.Equal(t, "uid-1", round.UserID)
	assert.NotEmpty(t, round.CreatedAt)

	// Both counters move, stamped with the play date.
	fx.courses.AssertCalled(t, "RecordPlay", ctx, "uid-1", "course-1", "2026-08-30")
	fx.profiles.AssertCalled(t, "RecordRound", ctx, "uid-1", "2026-08-30")
}

func TestRoundService_AddRound_UnknownCourse(t *testing.T) {
	fx := createTestRoundService(t)
	ctx := context.Background()

	fx.courses.On("Find", ctx, "uid-1", "missing").Return(nil, repository.ErrCourseNotFound)

	_, err := fx.service.AddRound(ctx, "uid-1", &usecase.AddRoundInput{CourseID: "missing", Date: "2026-08-30"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCourseNotFound))
	fx.rounds.AssertNotCalled(t, "Create", ctx, "uid-1", mock.Anything)
}

func TestRoundService_ListRounds_Filter(t *testing.T) {
	fx := createTestRoundService(t)
	ctx := context.Background()

	fx.rounds.On("ListAll", ctx, "uid-1").Return([]*entity.Round{
		{ID: "r1", CourseName: "Pebble Beach", Notes: "windy day"},
		{ID: "r2", CourseName: "Old Course", Notes: "birdie on 18"},
	}, nil)

	filtered, err := fx.service.ListRounds(ctx, "uid-1", "birdie")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "r2", filtered[0].ID)
}

func TestRoundService_UploadPhoto(t *testing.T) {
	fx := createTestRoundService(t)
	ctx := context.Background()

	fx.photos.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "users/uid-1/photos/") && strings.HasSuffix(key, ".jpg")
	}), mock.Anything, int64(11), mock.Anything).Return("https://photos/x.jpg", nil)

	url, err := fx.service.UploadPhoto(ctx, "uid-1", &usecase.PhotoUpload{
		Filename: "eighteenth.jpg",
		Size:     11,
		Body:     strings.NewReader("hello photo"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://photos/x.jpg", url)
}
