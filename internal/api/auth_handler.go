package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/shoresh/familytree-api/internal/api/shared"
	"github.com/shoresh/familytree-api/internal/platform/logger"
)

// EditorLogin exchanges the editor password for a token.
type EditorLogin interface {
	Login(ctx context.Context, password string) (string, time.Time, error)
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	login  EditorLogin
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(login EditorLogin, log *slog.Logger) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		login:  login,
		logger: log.With(slog.String("component", "auth_handler")),
	}
}

// IssueToken handles POST /api/auth/token.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	token, expiresAt, err := h.login.Login(r.Context(), req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("editor token issued", slog.Time("expires_at", expiresAt))
	shared.RespondWithJSON(w, r, http.StatusOK, newTokenResponse(token, expiresAt))
}
