package repository

import (
	"context"

	"fairway/internal/domain/entity"
)

// RoundRepository defines the operations for a user's round records.
// Rounds are append-only: there is no update operation.
type RoundRepository interface {
	// ListRecent returns up to limit rounds ordered by date descending.
	ListRecent(ctx context.Context, uid string, limit int) ([]*entity.Round, error)

	// ListAll returns every round ordered by date descending.
	ListAll(ctx context.Context, uid string) ([]*entity.Round, error)

	// Create persists a new round and returns its generated id.
	Create(ctx context.Context, uid string, round *entity.Round) (string, error)

	// DeleteAll removes every round document for the user and reports how
	// many were removed before any failure.
	DeleteAll(ctx context.Context, uid string) (int, error)
}
