package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fairway/internal/domain/entity"
)

// MockCourseRepository is a testify mock for repository.CourseRepository.
type MockCourseRepository struct {
	mock.Mock
}

func NewMockCourseRepository() *MockCourseRepository {
	return &MockCourseRepository{}
}

func (m *MockCourseRepository) Find(ctx context.Context, uid, courseID string) (*entity.Course, error) {
	args := m.Called(ctx, uid, courseID)
	course, _ := args.Get(0).(*entity.Course)

	return course, args.Error(1)
}

func (m *MockCourseRepository) ListRecent(ctx context.Context, uid string, limit int) ([]*entity.Course, error) {
	args := m.Called(ctx, uid, limit)
	courses, _ := args.Get(0).([]*entity.Course)

	return courses, args.Error(1)
}

func (m *MockCourseRepository) ListAll(ctx context.Context, uid string) ([]*entity.Course, error) {
	args := m.Called(ctx, uid)
	courses, _ := args.Get(0).([]*entity.Course)

	return courses, args.Error(1)
}

func (m *MockCourseRepository) Create(ctx context.Context, uid string, course *entity.Course) (string, error) {
	args := m.Called(ctx, uid, course)

	return args.String(0), args.Error(1)
}

func (m *MockCourseRepository) Update(ctx context.Context, uid string, course *entity.Course) error {
	args := m.Called(ctx, uid, course)

	return args.Error(0)
}

func (m *MockCourseRepository) RecordPlay(ctx context.Context, uid, courseID, playedDate string) error {
	args := m.Called(ctx, uid, courseID, playedDate)

	return args.Error(0)
}

func (m *MockCourseRepository) Delete(ctx context.Context, uid, courseID string) error {
	args := m.Called(ctx, uid, courseID)

	return args.Error(0)
}

func (m *MockCourseRepository) DeleteAll(ctx context.Context, uid string) (int, error) {
	args := m.Called(ctx, uid)

	return args.Int(0), args.Error(1)
}
