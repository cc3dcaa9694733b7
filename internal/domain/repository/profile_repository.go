// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"fairway/internal/domain/entity"
)

// ErrProfileNotFound is a domain-specific error returned when no profile
// document exists for an identity.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository defines the standard operations for profile persistence.
type ProfileRepository interface {
	// Find retrieves the profile keyed by the identity uid.
	Find(ctx context.Context, uid string) (*entity.Profile, error)

	// CreateIfAbsent writes the profile only when no document exists yet and
	// returns the stored profile. When a concurrent bootstrap already created
	// one, the existing document is returned untouched: counters are never
	// overwritten by a second first-sign-in.
	CreateIfAbsent(ctx context.Context, profile *entity.Profile) (*entity.Profile, error)

	// Merge applies a partial update to the profile document. Fields not set
	// on the update are left untouched.
	Merge(ctx context.Context, uid string, update *entity.ProfileUpdate) error

	// RecordRound atomically increments totalRounds and stamps lastPlayedDate.
	RecordRound(ctx context.Context, uid, playedDate string) error

	// RecordCourseAdded atomically increments totalCourses.
	RecordCourseAdded(ctx context.Context, uid string) error

	// Delete removes the profile document.
	Delete(ctx context.Context, uid string) error
}
