package auth

import (
	"context"
	"time"
)

// MockJWTService is a function-field implementation of JWTService for tests
// of packages that depend on token handling.
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, subject string) (string, time.Time, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*Claims, error)
}

var _ JWTService = (*MockJWTService)(nil)

// GenerateToken implements JWTService.
func (m *MockJWTService) GenerateToken(ctx context.Context, subject string) (string, time.Time, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, subject)
	}
	return "mock-jwt-token", time.Now().Add(time.Hour), nil
}

// ValidateToken implements JWTService.
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return &Claims{Role: RoleEditor, Subject: RoleEditor}, nil
}
