package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbenali/jobboard/internal/types"
)

// stubValidator maps fixed token strings to sessions.
type stubValidator struct {
	sessions map[string]types.Session
}

func (v *stubValidator) ValidateToken(token string) (types.Session, error) {
	session, ok := v.sessions[token]
	if !ok {
		return types.Session{}, fmt.Errorf("invalid token")
	}
	return session, nil
}

func newStubValidator() *stubValidator {
	return &stubValidator{sessions: map[string]types.Session{
		"admin-token": {UserID: uuid.New(), Email: "admin@example.com", Role: types.RoleAdmin},
		"user-token":  {UserID: uuid.New(), Email: "user@example.com", Role: types.RoleUser},
	}}
}

func sessionEcho(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := GetSession(r)
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(session.Email))
	}
}

func TestRequireAuth(t *testing.T) {
	validator := newStubValidator()
	handler := RequireAuth(validator)(sessionEcho(t))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid user token", "Bearer user-token", http.StatusOK},
		{"valid admin token", "Bearer admin-token", http.StatusOK},
		{"lowercase bearer", "bearer user-token", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"malformed header", "user-token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/applications/my", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			handler(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	validator := newStubValidator()
	handler := RequireAdmin(validator)(sessionEcho(t))

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer admin-token")
		w := httptest.NewRecorder()
		handler(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "admin@example.com", w.Body.String())
	})

	t.Run("non-admin gets access denied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer user-token")
		w := httptest.NewRecorder()
		handler(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Access denied", resp["message"])
	})

	t.Run("anonymous gets 401 not 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		w := httptest.NewRecorder()
		handler(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetSession_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetSession(req)
	assert.Error(t, err)
}
