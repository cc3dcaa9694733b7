package firestore

import (
	"context"
	"log/slog"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"

	"fairway/internal/domain/entity"
	"fairway/internal/domain/repository"
)

const roundsCollection = "rounds"

type roundRepository struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewRoundRepository is the constructor for roundRepository.
func NewRoundRepository(client *firestore.Client, logger *slog.Logger) repository.RoundRepository {
	return &roundRepository{
		client: client,
		logger: logger,
	}
}

func (r *roundRepository) collection(uid string) *firestore.CollectionRef {
	return r.client.Collection(usersCollection).Doc(uid).Collection(roundsCollection)
}

// ListRecent returns up to limit rounds ordered by date descending.
func (r *roundRepository) ListRecent(ctx context.Context, uid string, limit int) ([]*entity.Round, error) {
	query := r.collection(uid).OrderBy("date", firestore.Desc).Limit(limit)

	return r.list(ctx, query.Documents(ctx))
}

// ListAll returns every round ordered by date descending.
func (r *roundRepository) ListAll(ctx context.Context, uid string) ([]*entity.Round, error) {
	query := r.collection(uid).OrderBy("date", firestore.Desc)

	return r.list(ctx, query.Documents(ctx))
}

// Create persists a new round and returns its generated id.
func (r *roundRepository) Create(ctx context.Context, uid string, round *entity.Round) (string, error) {
	ref, _, err := r.collection(uid).Add(ctx, round)
	if err != nil {
		return "", errors.Wrap(err, "failed to create round")
	}

	r.logger.Info("Round created",
		slog.String("uid", uid),
		slog.String("round_id", ref.ID),
		slog.String("course_id", round.CourseID))

	return ref.ID, nil
}

// DeleteAll removes every round document for the user and reports how many
// were removed before any failure.
func (r *roundRepository) DeleteAll(ctx context.Context, uid string) (int, error) {
	return deleteAllDocs(ctx, r.collection(uid))
}

func (r *roundRepository) list(ctx context.Context, iter *firestore.DocumentIterator) ([]*entity.Round, error) {
	defer iter.Stop()

	var rounds []*entity.Round
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate rounds")
		}

		var round entity.Round
		if err := snap.DataTo(&round); err != nil {
			return nil, errors.Wrapf(err, "failed to decode round %s", snap.Ref.ID)
		}
		round.ID = snap.Ref.ID
		rounds = append(rounds, &round)
	}

	return rounds, nil
}
