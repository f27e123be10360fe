package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shoresh/familytree-api/internal/platform/logger"
)

// PasswordVerifier defines the interface for comparing passwords.
type PasswordVerifier interface {
	// Compare compares a hashed password with its possible plaintext equivalent.
	// Returns nil on success, or an error on failure (e.g., mismatch).
	Compare(hashedPassword, password string) error
}

// BcryptVerifier implements PasswordVerifier using bcrypt.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a new BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Compare implements the PasswordVerifier interface using bcrypt.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// HashPassword returns the bcrypt hash of password. A cost outside bcrypt's
// range uses bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// EditorAuthenticator exchanges the shared editor password for a token.
type EditorAuthenticator struct {
	passwordHash string
	verifier     PasswordVerifier
	tokens       JWTService
}

// NewEditorAuthenticator creates an authenticator checking passwords against
// passwordHash.
func NewEditorAuthenticator(passwordHash string, verifier PasswordVerifier, tokens JWTService) *EditorAuthenticator {
	if verifier == nil {
		verifier = NewBcryptVerifier()
	}
	return &EditorAuthenticator{
		passwordHash: passwordHash,
		verifier:     verifier,
		tokens:       tokens,
	}
}

// Login returns an editor token when password matches.
func (a *EditorAuthenticator) Login(ctx context.Context, password string) (string, time.Time, error) {
	if password == "" || a.verifier.Compare(a.passwordHash, password) != nil {
		logger.FromContext(ctx).Warn("editor login failed")
		return "", time.Time{}, ErrInvalidCredentials
	}
	return a.tokens.GenerateToken(ctx, RoleEditor)
}
