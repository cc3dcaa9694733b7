// Package repository contains hand-written testify mocks for the repository
// interfaces.
package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fairway/internal/domain/entity"
)

// MockProfileRepository is a testify mock for repository.ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{}
}

func (m *MockProfileRepository) Find(ctx context.Context, uid string) (*entity.Profile, error) {
	args := m.Called(ctx, uid)
	profile, _ := args.Get(0).(*entity.Profile)

	return profile, args.Error(1)
}

func (m *MockProfileRepository) CreateIfAbsent(ctx context.Context, profile *entity.Profile) (*entity.Profile, error) {
	args := m.Called(ctx, profile)
	stored, _ := args.Get(0).(*entity.Profile)

	return stored, args.Error(1)
}

func (m *MockProfileRepository) Merge(ctx context.Context, uid string, update *entity.ProfileUpdate) error {
	args := m.Called(ctx, uid, update)

	return args.Error(0)
}

func (m *MockProfileRepository) RecordRound(ctx context.Context, uid, playedDate string) error {
	args := m.Called(ctx, uid, playedDate)

	return args.Error(0)
}

func (m *MockProfileRepository) RecordCourseAdded(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)

	return args.Error(0)
}

func (m *MockProfileRepository) Delete(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)

	return args.Error(0)
}
