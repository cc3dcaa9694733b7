// Package service defines contracts for infrastructure-backed collaborators
// the use cases depend on.
package service

import (
	"context"

	"fairway/internal/domain/entity"
)

// AuthProvider abstracts the backend identity provider.
type AuthProvider interface {
	// VerifyIDToken validates a provider-issued ID token (e.g. from Google
	// federated sign-in) and resolves it to an identity.
	VerifyIDToken(ctx context.Context, idToken string) (*entity.Identity, error)

	// GetIdentity fetches the provider's record for a uid.
	GetIdentity(ctx context.Context, uid string) (*entity.Identity, error)

	// RevokeSessions invalidates the provider-side sessions for a uid.
	RevokeSessions(ctx context.Context, uid string) error

	// DeleteIdentity permanently removes the identity from the provider.
	DeleteIdentity(ctx context.Context, uid string) error
}

// PhoneVerifier abstracts the two-step phone sign-in flow: request a code
// against a number, then confirm the user-entered code against the returned
// handle. A handle stays confirmable until the provider invalidates it.
type PhoneVerifier interface {
	// RequestCode sends a verification SMS and returns an opaque handle.
	RequestCode(ctx context.Context, phoneNumber, recaptchaToken string) (string, error)

	// ConfirmCode exchanges handle+code for an identity. A stale or already
	// consumed handle fails with an auth error; it never panics.
	ConfirmCode(ctx context.Context, handle, code string) (*entity.Identity, error)
}

// AuthStateSource is the backend's authentication-state notification stream.
// Notifications carry the new identity, or nil when the session ended. They
// are delivered in emission order and must be consumed sequentially.
type AuthStateSource interface {
	// Emit queues an auth-state change. Safe for concurrent use.
	Emit(identity *entity.Identity)

	// Notifications returns the ordered stream of auth-state changes. The
	// channel is closed by Close.
	Notifications() <-chan *entity.Identity

	// Close tears the stream down; further Emit calls are dropped.
	Close()
}
