package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairway/internal/domain/entity"
	mockRepo "fairway/internal/mocks/repository"
)

func intPtr(v int) *int { return &v }

func TestStatsService_Dashboard(t *testing.T) {
	profiles := mockRepo.NewMockProfileRepository()
	courses := mockRepo.NewMockCourseRepository()
	rounds := mockRepo.NewMockRoundRepository()
	service := NewStatsService(profiles, courses, rounds, discardLogger())

	ctx := context.Background()

	profiles.On("Find", ctx, "uid-1").Return(&entity.Profile{
		UID: "uid-1", TotalRounds: 3, TotalCourses: 2,
	}, nil)
	courseList := []*entity.Course{
		{ID: "a", Name: "Pebble Beach", Lat: 36.57, Lng: -121.95},
		{ID: "b", Name: "Old Course", Lat: 56.34, Lng: -2.80},
		{ID: "c", Name: "Unmapped"}, // no coordinates, excluded from the map
	}
	courses.On("ListRecent", ctx, "uid-1", 5).Return(courseList[:2], nil)
	courses.On("ListAll", ctx, "uid-1").Return(courseList, nil)
	roundList := []*entity.Round{
		{ID: "r1", Score: intPtr(85)},
		{ID: "r2", Score: intPtr(79)},
		{ID: "r3"}, // no score recorded
	}
	rounds.On("ListRecent", ctx, "uid-1", 5).Return(roundList, nil)
	rounds.On("ListAll", ctx, "uid-1").Return(roundList, nil)

	view, err := service.Dashboard(ctx, "uid-1")
	require.NoError(t, err)

	assert.Equal(t, int64(3), view.Stats.TotalRounds)
	assert.Equal(t, int64(2), view.Stats.TotalCourses)
	require.NotNil(t, view.Stats.BestScore)
	assert.Equal(t, 79, *view.Stats.BestScore)
	require.NotNil(t, view.Stats.AvgScore)
	assert.InDelta(t, 82.0, *view.Stats.AvgScore, 0.001)

	require.NotNil(t, view.Map)
	assert.Equal(t, 2, view.Map.Courses)
	assert.InDelta(t, 36.57, view.Map.MinLat, 0.001)
	assert.InDelta(t, 56.34, view.Map.MaxLat, 0.001)
	assert.InDelta(t, -121.95, view.Map.MinLng, 0.001)
	assert.InDelta(t, -2.80, view.Map.MaxLng, 0.001)
	assert.InDelta(t, (36.57+56.34)/2, view.Map.CenterLat, 0.001)
}

func TestStatsService_Dashboard_NoCoordinates(t *testing.T) {
	profiles := mockRepo.NewMockProfileRepository()
	courses := mockRepo.NewMockCourseRepository()
	rounds := mockRepo.NewMockRoundRepository()
	service := NewStatsService(profiles, courses, rounds, discardLogger())

	ctx := context.Background()

	profiles.On("Find", ctx, "uid-1").Return(&entity.Profile{UID: "uid-1"}, nil)
	courses.On("ListRecent", ctx, "uid-1", 5).Return(nil, nil)
	courses.On("ListAll", ctx, "uid-1").Return([]*entity.Course{{ID: "c", Name: "Unmapped"}}, nil)
	rounds.On("ListRecent", ctx, "uid-1", 5).Return(nil, nil)
	rounds.On("ListAll", ctx, "uid-1").Return(nil, nil)

	view, err := service.Dashboard(ctx, "uid-1")
	require.NoError(t, err)
	assert.Nil(t, view.Map)
	assert.Nil(t, view.Stats.BestScore)
	assert.Nil(t, view.Stats.AvgScore)
}
