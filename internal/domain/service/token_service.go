package service

import "time"

// Claims is the validated content of a session access token.
type Claims struct {
	UID       string
	ExpiresAt time.Time
}

// TokenService defines the interface for generating and validating the
// session tokens handed to the web client after sign-in.
type TokenService interface {
	// GenerateToken creates a signed access token for the uid.
	GenerateToken(uid string) (string, error)

	// ValidateToken checks a token string and returns its claims.
	ValidateToken(tokenString string) (*Claims, error)
}
