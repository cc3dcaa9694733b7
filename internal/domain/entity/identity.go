// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// Identity is the authenticated principal issued by the backend auth provider.
// It is opaque to the application: every field except UID may be empty, and
// none of them are mutated locally.
type Identity struct {
	UID         string // Unique identifier assigned by the auth provider.
	DisplayName string // Display name echoed from the provider, if any.
	Email       string // Verified email address, empty for phone-only accounts.
	PhotoURL    string // Avatar URL echoed from the provider.
	PhoneNumber string // E.164 phone number for phone-based accounts.
}
