package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fairway/internal/domain/entity"
)

// MockRoundRepository is a testify mock for repository.RoundRepository.
type MockRoundRepository struct {
	mock.Mock
}

func NewMockRoundRepository() *MockRoundRepository {
	return &MockRoundRepository{}
}

func (m *MockRoundRepository) ListRecent(ctx context.Context, uid string, limit int) ([]*entity.Round, error) {
	args := m.Called(ctx, uid, limit)
	rounds, _ := args.Get(0).([]*entity.Round)

	return rounds, args.Error(1)
}

func (m *MockRoundRepository) ListAll(ctx context.Context, uid string) ([]*entity.Round, error) {
	args := m.Called(ctx, uid)
	rounds, _ := args.Get(0).([]*entity.Round)

	return rounds, args.Error(1)
}

func (m *MockRoundRepository) Create(ctx context.Context, uid string, round *entity.Round) (string, error) {
	args := m.Called(ctx, uid, round)

	return args.String(0), args.Error(1)
}

func (m *MockRoundRepository) DeleteAll(ctx context.Context, uid string) (int, error) {
	args := m.Called(ctx, uid)

	return args.Int(0), args.Error(1)
}
