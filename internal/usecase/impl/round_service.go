package impl

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"fairway/internal/domain/entity"
	domainerrors "fairway/internal/domain/errors"
	"fairway/internal/domain/repository"
	"fairway/internal/domain/service"
	"fairway/internal/usecase"
)

// roundService implements the RoundUsecase interface.
type roundService struct {
	rounds   repository.RoundRepository
	courses  repository.CourseRepository
	profiles repository.ProfileRepository
	photos   service.PhotoStore
	notifier service.Notifier
	logger   *slog.Logger
}

// NewRoundService is the constructor for roundService.
func NewRoundService(
	rounds repository.RoundRepository,
	courses repository.CourseRepository,
	profiles repository.ProfileRepository,
	photos service.PhotoStore,
	notifier service.Notifier,
	logger *slog.Logger,
) usecase.RoundUsecase {
	return &roundService{
		rounds:   rounds,
		courses:  courses,
		profiles: profiles,
		photos:   photos,
		notifier: notifier,
		logger:   logger,
	}
}

// ListRounds returns every round, newest first. A non-empty filter narrows by
// a case-insensitive contains match on course name and notes.
func (srv *roundService) ListRounds(ctx context.Context, uid, filter string) ([]*entity.Round, error) {
	rounds, err := srv.rounds.ListAll(ctx, uid)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list rounds")
	}

	if filter == "" {
		return rounds, nil
	}

	needle := strings.ToLower(filter)
	filtered := make([]*entity.Round, 0, len(rounds))
	for _, round := range rounds {
		if strings.Contains(strings.ToLower(round.CourseName), needle) ||
			strings.Contains(strings.ToLower(round.Notes), needle) {
			filtered = append(filtered, round)
		}
	}

	return filtered, nil
}

// AddRound logs a round against an existing course. The round document is
// written first; the course and profile counters then move by atomic
// increments stamped with the play date, never by recomputation.
func (srv *roundService) AddRound(ctx context.Context, uid string, input *usecase.AddRoundInput) (*entity.Round, error) {
	course, err := srv.courses.Find(ctx, uid, input.CourseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCourseNotFound, input.CourseID)
		}

		return nil, errors.Wrap(err, "failed to resolve course")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	round := &entity.Round{
		UserID:     uid,
		CourseID:   course.ID,
		CourseName: course.Name,
		Date:       input.Date,
		Score:      input.Score,
		Par:        input.Par,
		Tees:       input.Tees,
		Rating:     input.Rating,
		Slope:      input.Slope,
		Notes:      input.Notes,
		Weather:    input.Weather,
		PlayedWith: input.PlayedWith,
		PhotoURLs:  input.PhotoURLs,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	id, err := srv.rounds.Create(ctx, uid, round)
	if err != nil {
		srv.notifier.Publish(uid, entity.NotificationError, "Failed to log round.")

		return nil, errors.Wrap(err, "failed to create round")
	}
	round.ID = id

	if err := srv.courses.RecordPlay(ctx, uid, course.ID, input.Date); err != nil {
		srv.logger.Warn("Course play counter increment failed", "uid", uid, "course_id", course.ID, "error", err)
	}
	if err := srv.profiles.RecordRound(ctx, uid, input.Date); err != nil {
		srv.logger.Warn("Profile round counter increment failed", "uid", uid, "error", err)
	}

	srv.notifier.Publish(uid, entity.NotificationSuccess, "Round logged at "+course.Name)

	return round, nil
}

// UploadPhoto stores a photo blob under the user's prefix, publishing
// progress notifications as the upload advances.
func (srv *roundService) UploadPhoto(ctx context.Context, uid string, upload *usecase.PhotoUpload) (string, error) {
	key := photoPrefix(uid) + "photos/" + uuid.NewString() + path.Ext(upload.Filename)

	var lastPercent int64 = -1
	progress := func(written, total int64) {
		if total <= 0 {
			return
		}
		percent := written * 100 / total
		// Quarter steps keep the stream quiet on large photos.
		if percent/25 > lastPercent/25 || percent == 100 && lastPercent != 100 {
			lastPercent = percent
			srv.notifier.Publish(uid, entity.NotificationInfo, fmt.Sprintf("Uploading photo: %d%%", percent))
		}
	}

	url, err := srv.photos.Upload(ctx, key, upload.Body, upload.Size, progress)
	if err != nil {
		srv.notifier.Publish(uid, entity.NotificationError, "Photo upload failed.")

		return "", errors.Wrap(err, "failed to upload photo")
	}

	srv.notifier.Publish(uid, entity.NotificationSuccess, "Photo uploaded.")

	return url, nil
}
