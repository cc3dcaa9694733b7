// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"context"
	"log/slog"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"

	"fairway/internal/domain/entity"
	"fairway/internal/domain/service"
)

// identityService implements service.AuthProvider over the Firebase Auth
// admin client.
type identityService struct {
	client *firebaseauth.Client
	logger *slog.Logger
}

// NewIdentityService is the constructor for identityService.
func NewIdentityService(client *firebaseauth.Client, logger *slog.Logger) service.AuthProvider {
	return &identityService{
		client: client,
		logger: logger,
	}
}

// VerifyIDToken validates a provider-issued ID token and resolves the full
// identity record behind it.
func (s *identityService) VerifyIDToken(ctx context.Context, idToken string) (*entity.Identity, error) {
	token, err := s.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Warn("ID token verification failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to verify ID token")
	}

	return s.GetIdentity(ctx, token.UID)
}

// GetIdentity fetches the provider's user record for a uid.
func (s *identityService) GetIdentity(ctx context.Context, uid string) (*entity.Identity, error) {
	record, err := s.client.GetUser(ctx, uid)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get user %s", uid)
	}

	return identityFromRecord(record), nil
}

// RevokeSessions invalidates all refresh tokens issued to the uid.
func (s *identityService) RevokeSessions(ctx context.Context, uid string) error {
	if err := s.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return errors.Wrapf(err, "failed to revoke sessions for %s", uid)
	}

	return nil
}

// DeleteIdentity permanently removes the identity from the provider.
func (s *identityService) DeleteIdentity(ctx context.Context, uid string) error {
	if err := s.client.DeleteUser(ctx, uid); err != nil {
		return errors.Wrapf(err, "failed to delete user %s", uid)
	}

	return nil
}

func identityFromRecord(record *firebaseauth.UserRecord) *entity.Identity {
	return &entity.Identity{
		UID:         record.UID,
		DisplayName: record.DisplayName,
		Email:       record.Email,
		PhotoURL:    record.PhotoURL,
		PhoneNumber: record.PhoneNumber,
	}
}
