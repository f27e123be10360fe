package auth

import (
	"context"
	"time"
)

// RoleEditor is the only role; it grants access to mutating routes.
const RoleEditor = "editor"

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed editor token for subject.
	// Returns the token string and its expiry, or an error if signing fails.
	GenerateToken(ctx context.Context, subject string) (string, time.Time, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns the claims if the token is valid and carries the editor role,
	// or an error if validation fails (expired, invalid signature, wrong role, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the claims extracted from a validated token.
type Claims struct {
	// Role is the role granted by the token.
	Role string `json:"role,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
