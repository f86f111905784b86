// Package middleware provides HTTP middleware shared by the API server.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const (
	// requestIDKey is the context key for the per-request identifier.
	requestIDKey ContextKey = "requestID"
	// sessionIDKey is the context key for a verified session ID.
	sessionIDKey ContextKey = "sessionID"
)

// RequestID tags every request with a fresh identifier, exposed both to
// handlers via the context and to clients via the X-Request-ID header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request identifier, or "" when the RequestID
// middleware did not run.
func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}

// TokenVerifier checks a session handle and returns the session ID it
// was issued for.
type TokenVerifier interface {
	VerifyToken(tokenString string) (string, error)
}

// SessionContext resolves an optional bearer session handle into a
// session ID on the request context. Requests without a handle, or with
// one that fails verification, pass through without a session; handlers
// that require one reject via GetSessionID.
func SessionContext(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			sessionID, err := verifier.VerifyToken(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionID extracts the verified session ID from the request context.
func GetSessionID(r *http.Request) (string, error) {
	sessionID, ok := r.Context().Value(sessionIDKey).(string)
	if !ok {
		return "", fmt.Errorf("session ID not found in request context")
	}
	return sessionID, nil
}

// BearerToken extracts the bearer token from the Authorization header.
// Handles a case-insensitive "Bearer" prefix.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
