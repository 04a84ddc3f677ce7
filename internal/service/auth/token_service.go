package auth

import (
	"context"
	"time"
)

// TokenService defines operations for minting and validating access
// tokens. No route currently requires a token; the service exists so that
// authentication can be added without reworking configuration or wiring.
type TokenService interface {
	// GenerateToken creates a signed access token for the given user.
	GenerateToken(ctx context.Context, userID int64) (string, error)

	// ValidateToken validates a token string and extracts its claims.
	// Returns ErrInvalidToken or ErrExpiredToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the payload carried by access tokens.
type Claims struct {
	// UserID is the user the token was issued for.
	UserID int64

	// Standard registered JWT claims
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
