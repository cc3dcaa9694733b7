package firestore

import (
	"context"
	"log/slog"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fairway/internal/domain/entity"
	"fairway/internal/domain/repository"
)

const coursesCollection = "coursesPlayed"

type courseRepository struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewCourseRepository is the constructor for courseRepository.
func NewCourseRepository(client *firestore.Client, logger *slog.Logger) repository.CourseRepository {
	return &courseRepository{
		client: client,
		logger: logger,
	}
}

func (r *courseRepository) collection(uid string) *firestore.CollectionRef {
	return r.client.Collection(usersCollection).Doc(uid).Collection(coursesCollection)
}

// Find retrieves a single course by id.
func (r *courseRepository) Find(ctx context.Context, uid, courseID string) (*entity.Course, error) {
	snap, err := r.collection(uid).Doc(courseID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrCourseNotFound
		}

		return nil, errors.Wrapf(err, "failed to get course %s", courseID)
	}

	return decodeCourse(snap)
}

// ListRecent returns up to limit courses ordered by lastPlayed descending.
func (r *courseRepository) ListRecent(ctx context.Context, uid string, limit int) ([]*entity.Course, error) {
	query := r.collection(uid).OrderBy("lastPlayed", firestore.Desc).Limit(limit)

	return r.list(ctx, query.Documents(ctx))
}

// ListAll returns every course ordered by lastPlayed descending.
func (r *courseRepository) ListAll(ctx context.Context, uid string) ([]*entity.Course, error) {
	query := r.collection(uid).OrderBy("lastPlayed", firestore.Desc)

	return r.list(ctx, query.Documents(ctx))
}

// Create persists a new course and returns its generated id.
func (r *courseRepository) Create(ctx context.Context, uid string, course *entity.Course) (string, error) {
	ref, _, err := r.collection(uid).Add(ctx, course)
	if err != nil {
		return "", errors.Wrap(err, "failed to create course")
	}

	r.logger.Info("Course created", slog.String("uid", uid), slog.String("course_id", ref.ID))

	return ref.ID, nil
}

// Update replaces an existing course document in place.
func (r *courseRepository) Update(ctx context.Context, uid string, course *entity.Course) error {
	if _, err := r.collection(uid).Doc(course.ID).Set(ctx, course); err != nil {
		return errors.Wrapf(err, "failed to update course %s", course.ID)
	}

	return nil
}

// RecordPlay atomically increments timesPlayed and stamps lastPlayed.
func (r *courseRepository) RecordPlay(ctx context.Context, uid, courseID, playedDate string) error {
	_, err := r.collection(uid).Doc(courseID).Update(ctx, []firestore.Update{
		{Path: "timesPlayed", Value: firestore.Increment(1)},
		{Path: "lastPlayed", Value: playedDate},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrCourseNotFound
		}

		return errors.Wrapf(err, "failed to record play on course %s", courseID)
	}

	return nil
}

// Delete removes a single course document.
func (r *courseRepository) Delete(ctx context.Context, uid, courseID string) error {
	if _, err := r.collection(uid).Doc(courseID).Delete(ctx); err != nil {
		return errors.Wrapf(err, "failed to delete course %s", courseID)
	}

	return nil
}

// DeleteAll removes every course document for the user. The count of
// documents removed before any failure is always reported so callers can
// tell a clean wipe from a partial one.
func (r *courseRepository) DeleteAll(ctx context.Context, uid string) (int, error) {
	return deleteAllDocs(ctx, r.collection(uid))
}

func (r *courseRepository) list(ctx context.Context, iter *firestore.DocumentIterator) ([]*entity.Course, error) {
	defer iter.Stop()

	var courses []*entity.Course
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate courses")
		}

		course, err := decodeCourse(snap)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	return courses, nil
}

func decodeCourse(snap *firestore.DocumentSnapshot) (*entity.Course, error) {
	var course entity.Course
	if err := snap.DataTo(&course); err != nil {
		return nil, errors.Wrapf(err, "failed to decode course %s", snap.Ref.ID)
	}
	course.ID = snap.Ref.ID

	return &course, nil
}

// deleteAllDocs deletes every document in a collection one by one, returning
// the number deleted. It stops on the first failure.
func deleteAllDocs(ctx context.Context, collection *firestore.CollectionRef) (int, error) {
	iter := collection.Documents(ctx)
	defer iter.Stop()

	deleted := 0
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return deleted, errors.Wrap(err, "failed to iterate documents for deletion")
		}

		if _, err := snap.Ref.Delete(ctx); err != nil {
			return deleted, errors.Wrapf(err, "failed to delete document %s", snap.Ref.ID)
		}
		deleted++
	}

	return deleted, nil
}
