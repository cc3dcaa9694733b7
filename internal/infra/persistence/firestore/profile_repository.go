// Package firestore implements the repository interfaces over the Firestore
// document store. All per-user data lives under users/{uid}; counters are
// moved only by atomic increments so concurrent writers never clobber them.
package firestore

import (
	"context"
	"log/slog"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fairway/internal/domain/entity"
	"fairway/internal/domain/repository"
)

const usersCollection = "users"

type profileRepository struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(client *firestore.Client, logger *slog.Logger) repository.ProfileRepository {
	return &profileRepository{
		client: client,
		logger: logger,
	}
}

func (r *profileRepository) doc(uid string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(uid)
}

// Find retrieves the profile keyed by the identity uid.
func (r *profileRepository) Find(ctx context.Context, uid string) (*entity.Profile, error) {
	snap, err := r.doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrapf(err, "failed to get profile %s", uid)
	}

	var profile entity.Profile
	if err := snap.DataTo(&profile); err != nil {
		return nil, errors.Wrapf(err, "failed to decode profile %s", uid)
	}

	return &profile, nil
}

// CreateIfAbsent writes the profile only when no document exists yet. On a
// lost race the winner's document is read back and returned untouched, so a
// second first-sign-in can never zero counters already moved by increments.
func (r *profileRepository) CreateIfAbsent(ctx context.Context, profile *entity.Profile) (*entity.Profile, error) {
	_, err := r.doc(profile.UID).Create(ctx, profile)
	if err == nil {
		r.logger.Info("Profile bootstrapped", slog.String("uid", profile.UID))

		return profile, nil
	}

	if status.Code(err) != codes.AlreadyExists {
		return nil, errors.Wrapf(err, "failed to create profile %s", profile.UID)
	}

	return r.Find(ctx, profile.UID)
}

// Merge applies a partial update to the profile document.
func (r *profileRepository) Merge(ctx context.Context, uid string, update *entity.ProfileUpdate) error {
	fields := map[string]any{}
	if update.DisplayName != nil {
		fields["displayName"] = *update.DisplayName
	}
	if update.PhotoURL != nil {
		fields["photoURL"] = *update.PhotoURL
	}
	if update.HomeCourseName != nil {
		fields["homeCourseName"] = *update.HomeCourseName
	}
	if update.HomeCourseLoc != nil {
		fields["homeCourseLoc"] = *update.HomeCourseLoc
	}
	if update.Handicap != nil {
		fields["handicap"] = *update.Handicap
	}
	if len(fields) == 0 {
		return nil
	}

	if _, err := r.doc(uid).Set(ctx, fields, firestore.MergeAll); err != nil {
		return errors.Wrapf(err, "failed to merge profile %s", uid)
	}

	return nil
}

// RecordRound atomically increments totalRounds and stamps lastPlayedDate.
func (r *profileRepository) RecordRound(ctx context.Context, uid, playedDate string) error {
	_, err := r.doc(uid).Update(ctx, []firestore.Update{
		{Path: "totalRounds", Value: firestore.Increment(1)},
		{Path: "lastPlayedDate", Value: playedDate},
	})
	if err != nil {
		return errors.Wrapf(err, "failed to record round on profile %s", uid)
	}

	return nil
}

// RecordCourseAdded atomically increments totalCourses.
func (r *profileRepository) RecordCourseAdded(ctx context.Context, uid string) error {
	_, err := r.doc(uid).Update(ctx, []firestore.Update{
		{Path: "totalCourses", Value: firestore.Increment(1)},
	})
	if err != nil {
		return errors.Wrapf(err, "failed to record course on profile %s", uid)
	}

	return nil
}

// Delete removes the profile document.
func (r *profileRepository) Delete(ctx context.Context, uid string) error {
	if _, err := r.doc(uid).Delete(ctx); err != nil {
		return errors.Wrapf(err, "failed to delete profile %s", uid)
	}

	return nil
}
