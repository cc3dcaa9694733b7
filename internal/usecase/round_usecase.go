package usecase

import (
	"context"
	"io"

	"fairway/internal/domain/entity"
)

// RoundUsecase defines the business operations on a user's rounds.
type RoundUsecase interface {
	// ListRounds returns every round, newest first, optionally narrowed by a
	// contains filter on course name and notes.
	ListRounds(ctx context.Context, uid, filter string) ([]*entity.Round, error)

	// AddRound logs a round against an existing course, bumping the course
	// and profile counters atomically with the play date.
	AddRound(ctx context.Context, uid string, input *AddRoundInput) (*entity.Round, error)

	// UploadPhoto stores a photo blob and returns its URL for inclusion
	// in a subsequent AddRound. Progress is published to the user's
	// notification stream.
	UploadPhoto(ctx context.Context, uid string, upload *PhotoUpload) (string, error)
}

// AddRoundInput defines the data required to log a round.
type AddRoundInput struct {
	CourseID   string   `json:"courseId" validate:"required"`
	Date       string   `json:"date" validate:"required,datetime=2006-01-02"`
	Score      *int     `json:"score,omitempty" validate:"omitempty,gt=0"`
	Par        *int     `json:"par,omitempty" validate:"omitempty,gt=0"`
	Tees       string   `json:"tees"`
	Rating     *float64 `json:"rating,omitempty"`
	Slope      *int     `json:"slope,omitempty"`
	Notes      string   `json:"notes"`
	Weather    string   `json:"weather"`
	PlayedWith []string `json:"playedWith,omitempty"`
	PhotoURLs  []string `json:"photoUrls,omitempty"`
}

// PhotoUpload carries a photo blob stream and its declared size.
type PhotoUpload struct {
	Filename string
	Size     int64
	Body     io.Reader
}
