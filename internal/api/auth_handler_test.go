package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoresh/familytree-api/internal/config"
	"github.com/shoresh/familytree-api/internal/service/auth"
)

func TestAuthHandler_IssueToken(t *testing.T) {
	expiresAt := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		body         string
		loginErr     error
		expectedCode int
	}{
		{name: "success", body: `{"password":"open sesame"}`, expectedCode: http.StatusOK},
		{name: "wrong password", body: `{"password":"nope"}`, loginErr: auth.ErrInvalidCredentials,
			expectedCode: http.StatusUnauthorized},
		{name: "missing password", body: `{}`, expectedCode: http.StatusBadRequest},
		{name: "malformed", body: `{"password":`, expectedCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			login := &mockEditorLogin{
				LoginFn: func(ctx context.Context, password string) (string, time.Time, error) {
					if tt.loginErr != nil {
						return "", time.Time{}, tt.loginErr
					}
					return "signed-token", expiresAt, nil
				},
			}
			w := httptest.NewRecorder()
			NewAuthHandler(login, nil).IssueToken(w, newRequest(http.MethodPost, "/api/auth/token", tt.body, nil))

			require.Equal(t, tt.expectedCode, w.Code, w.Body.String())
			if tt.expectedCode == http.StatusOK {
				var resp TokenResponse
				decodeBody(t, w, &resp)
				assert.Equal(t, "signed-token", resp.Token)
				assert.Equal(t, "2024-03-20T12:00:00Z", resp.ExpiresAt)
			}
		})
	}
}

func TestAuthHandler_IssueToken_Bcrypt(t *testing.T) {
	hash, err := auth.HashPassword("open sesame", 4)
	require.NoError(t, err)

	tokens, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "0123456789abcdef0123456789abcdef",
		EditorPasswordHash:   hash,
		TokenLifetimeMinutes: 30,
	})
	require.NoError(t, err)
	h := NewAuthHandler(auth.NewEditorAuthenticator(hash, nil, tokens), nil)

	w := httptest.NewRecorder()
	h.IssueToken(w, newRequest(http.MethodPost, "/api/auth/token", `{"password":"open sesame"}`, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp TokenResponse
	decodeBody(t, w, &resp)
	claims, err := tokens.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleEditor, claims.Role)

	w = httptest.NewRecorder()
	h.IssueToken(w, newRequest(http.MethodPost, "/api/auth/token", `{"password":"open says me"}`, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", errorMessage(t, w))
}
