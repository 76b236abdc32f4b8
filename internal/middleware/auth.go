package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"go-course-store/internal/model"
)

type tokenVerifier interface {
	Verify(tokenString string) (string, error)
}

type contextKey string

const usernameContextKey contextKey = "auth_username"

type AuthMiddleware struct {
	tokens tokenVerifier
}

func NewAuthMiddleware(tokens tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth authenticates the bearer token and stores the subject
// username in the request context. Missing, malformed and expired tokens
// all produce the same 401 response; the cause is only logged.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeUnauthenticated(w)
			return
		}

		username, err := m.tokens.Verify(strings.TrimSpace(header[7:]))
		if err != nil {
			reason := "invalid"
			if errors.Is(err, model.ErrTokenExpired) {
				reason = "expired"
			}
			slog.Warn("rejected bearer token", "reason", reason, "path", r.URL.Path)
			writeUnauthenticated(w)
			return
		}

		ctx := context.WithValue(r.Context(), usernameContextKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameContextKey).(string)
	return username, ok && username != ""
}

func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    "UNAUTHORIZED",
			Message: "could not validate credentials",
		},
	})
}
