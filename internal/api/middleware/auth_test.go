package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/nkhandel/taskpilot-api/internal/mocks"
	"github.com/nkhandel/taskpilot-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name           string
		authHeader     string
		validateErr    error
		claims         *auth.Claims
		expectedStatus int
		expectedUserID uuid.UUID
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer valid-token",
			claims:         &auth.Claims{UserID: userID, Username: "frieda"},
			expectedStatus: http.StatusOK,
			expectedUserID: userID,
		},
		{
			name:           "missing auth header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid auth format",
			authHeader:     "InvalidFormat",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer expired-token",
			validateErr:    auth.ErrExpiredToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer invalid-token",
			validateErr:    auth.ErrInvalidToken,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "token not yet valid",
			authHeader:     "Bearer future-token",
			validateErr:    auth.ErrTokenNotYetValid,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "unexpected validation error",
			authHeader:     "Bearer broken-token",
			validateErr:    assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			jwtService := &mocks.MockJWTService{
				Claims:      tc.claims,
				ValidateErr: tc.validateErr,
			}
			m := NewAuthMiddleware(jwtService)

			var gotUserID uuid.UUID
			var gotOK bool
			handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, gotOK = GetUserID(r)
				w.WriteHeader(http.StatusOK)
			}))

			r := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tc.authHeader != "" {
				r.Header.Set("Authorization", tc.authHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			assert.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedStatus == http.StatusOK {
				require.True(t, gotOK)
				assert.Equal(t, tc.expectedUserID, gotUserID)
			}
		})
	}
}

func TestAuthMiddleware_ContextHelpers(t *testing.T) {
	t.Parallel()

	t.Run("username propagated to context", func(t *testing.T) {
		t.Parallel()

		jwtService := &mocks.MockJWTService{
			Claims: &auth.Claims{UserID: uuid.New(), Username: "frieda"},
		}
		m := NewAuthMiddleware(jwtService)

		var gotUsername string
		var gotOK bool
		handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUsername, gotOK = GetUsername(r)
			w.WriteHeader(http.StatusOK)
		}))

		r := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		r.Header.Set("Authorization", "Bearer valid-token")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		require.True(t, gotOK)
		assert.Equal(t, "frieda", gotUsername)
	})

	t.Run("missing identity on plain request", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		_, ok := GetUserID(r)
		assert.False(t, ok)
		_, ok = GetUsername(r)
		assert.False(t, ok)
	})
}
