// Package middleware provides HTTP middleware for authentication and authorization.
//
// Role gating happens here and only here: handlers behind RequireAdmin may
// assume the guard already ran and never re-check the role themselves.
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mbenali/jobboard/internal/types"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// sessionKey is the context key for storing the authenticated session.
const sessionKey ContextKey = "session"

// TokenValidator validates a bearer token and returns the session it carries.
// This lets the middleware work with any token service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (types.Session, error)
}

// RequireAuth validates the bearer token and adds the session to the request
// context. Requests without a valid token get a 401.
func RequireAuth(validator TokenValidator) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session, ok := authenticate(validator, r)
			if !ok {
				deny(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			next(w, r.WithContext(withSession(r.Context(), session)))
		}
	}
}

// RequireAdmin validates the bearer token and additionally requires the
// admin role. Authenticated non-admins get a 403 with an access-denied
// message; there is no silent redirect path.
func RequireAdmin(validator TokenValidator) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session, ok := authenticate(validator, r)
			if !ok {
				deny(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if !session.IsAdmin() {
				deny(w, http.StatusForbidden, "Access denied")
				return
			}
			next(w, r.WithContext(withSession(r.Context(), session)))
		}
	}
}

// authenticate extracts and validates the bearer token from the request.
func authenticate(validator TokenValidator, r *http.Request) (types.Session, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return types.Session{}, false
	}

	// Case-insensitive "Bearer" prefix.
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return types.Session{}, false
	}

	session, err := validator.ValidateToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return types.Session{}, false
	}
	return session, true
}

func withSession(ctx context.Context, session types.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSession extracts the authenticated session from the request context.
func GetSession(r *http.Request) (types.Session, error) {
	session, ok := r.Context().Value(sessionKey).(types.Session)
	if !ok {
		return types.Session{}, fmt.Errorf("session not found in request context")
	}
	return session, nil
}

// NewRequestWithSession returns a copy of r carrying the session, bypassing
// token validation. For testing purposes.
func NewRequestWithSession(r *http.Request, session types.Session) *http.Request {
	return r.WithContext(withSession(r.Context(), session))
}

// deny writes the standard error envelope used across the API.
func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message})
}
