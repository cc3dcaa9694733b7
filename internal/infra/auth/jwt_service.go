package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"fairway/config"
	domainerrors "fairway/internal/domain/errors"
	"fairway/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret string        // Secret key for signing access tokens.
	ttl    time.Duration // Time-to-live for access tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret: cfg.SecretKey.Access,
		ttl:    time.Hour * 24, // matches the provider's session lifetime
	}, nil
}

// GenerateToken creates a signed access token for the uid.
func (s *jwtService) GenerateToken(uid string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": uid,                   // Subject (who the token is for)
		"iat": now.Unix(),            // Issued At
		"exp": now.Add(s.ttl).Unix(), // Expiration Time
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// ValidateToken checks the validity of a token string and returns its claims.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrNotAuthenticated
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domainerrors.ErrNotAuthenticated
	}

	sub, err := mapClaims.GetSubject()
	if err != nil || sub == "" {
		return nil, domainerrors.ErrNotAuthenticated
	}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, domainerrors.ErrNotAuthenticated
	}

	return &service.Claims{
		UID:       sub,
		ExpiresAt: exp.Time,
	}, nil
}
