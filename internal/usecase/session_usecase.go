// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"fairway/internal/domain/entity"
)

// SessionUsecase is the session store: it owns the authentication state
// machine, reacts to auth-state notifications, and exposes the sign-in,
// sign-out and account operations built on top of it.
type SessionUsecase interface {
	// SignInWithGoogle verifies a Google-federated ID token, emits the
	// signed-in identity into the auth stream and returns a session token.
	SignInWithGoogle(ctx context.Context, idToken string) (*SignInResult, error)

	// RequestPhoneCode starts phone sign-in: it sends a verification SMS and
	// returns the opaque handle the code must be confirmed against.
	RequestPhoneCode(ctx context.Context, input *RequestPhoneCodeInput) (string, error)

	// ConfirmPhoneCode completes phone sign-in. A failed attempt leaves the
	// handle usable, so the caller may retry with a corrected code without
	// requesting a new one.
	ConfirmPhoneCode(ctx context.Context, input *ConfirmPhoneCodeInput) (*SignInResult, error)

	// SignOut revokes provider sessions and forces the session to Anonymous.
	// Safe to call from any state, including while a profile load is in
	// flight; the stale load result is discarded.
	SignOut(ctx context.Context) error

	// Snapshot returns the current session state.
	Snapshot() entity.SessionSnapshot

	// Subscribe registers for session state changes. The returned cancel
	// function must be called to release the subscription.
	Subscribe() (<-chan entity.SessionSnapshot, func())

	// UpdateProfile applies a partial profile edit for the signed-in user.
	// Rejected unless the session is fully Ready.
	UpdateProfile(ctx context.Context, update *entity.ProfileUpdate) (*entity.Profile, error)

	// DeleteAccount removes all user data and then the identity, in order:
	// rounds, courses, photos, profile document, identity. The cascade halts
	// at the first failure; the identity is never deleted while any user
	// data remains.
	DeleteAccount(ctx context.Context) error
}

// --- Input/Output DTOs ---

// SignInResult carries the outcome of a completed sign-in.
type SignInResult struct {
	Token    string           `json:"token"`
	Identity *entity.Identity `json:"identity"`
}

// RequestPhoneCodeInput defines the data required to start phone sign-in.
type RequestPhoneCodeInput struct {
	PhoneNumber    string `json:"phoneNumber" validate:"required,e164"`
	RecaptchaToken string `json:"recaptchaToken"`
}

// ConfirmPhoneCodeInput defines the data required to complete phone sign-in.
type ConfirmPhoneCodeInput struct {
	Handle string `json:"handle" validate:"required"`
	Code   string `json:"code" validate:"required"`
}
