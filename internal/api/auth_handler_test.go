package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nkhandel/taskpilot-api/internal/domain"
	"github.com/nkhandel/taskpilot-api/internal/mocks"
	"github.com/nkhandel/taskpilot-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, handler http.HandlerFunc, target string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler(w, req)
	return w
}

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		payload    map[string]interface{}
		createErr  error
		tokenErr   error
		wantStatus int
		wantToken  bool
	}{
		{
			name: "valid registration",
			payload: map[string]interface{}{
				"username": "frieda",
				"password": "secret123",
			},
			wantStatus: http.StatusCreated,
			wantToken:  true,
		},
		{
			name: "username too short",
			payload: map[string]interface{}{
				"username": "ab",
				"password": "secret123",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "password too short",
			payload: map[string]interface{}{
				"username": "frieda",
				"password": "short",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing fields",
			payload: map[string]interface{}{
				"username": "frieda",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate username",
			payload: map[string]interface{}{
				"username": "frieda",
				"password": "secret123",
			},
			createErr:  store.ErrUsernameExists,
			wantStatus: http.StatusConflict,
		},
		{
			name: "store failure",
			payload: map[string]interface{}{
				"username": "frieda",
				"password": "secret123",
			},
			createErr:  assert.AnError,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "token generation failure",
			payload: map[string]interface{}{
				"username": "frieda",
				"password": "secret123",
			},
			tokenErr:   assert.AnError,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			userStore := &mocks.MockUserStore{Err: tc.createErr}
			jwtService := &mocks.MockJWTService{Token: "test-token", Err: tc.tokenErr}
			passwordVerifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}
			handler := NewAuthHandler(userStore, jwtService, passwordVerifier)

			w := postJSON(t, handler.Register, "/api/auth/register", tc.payload)

			assert.Equal(t, tc.wantStatus, w.Code)

			if tc.wantToken {
				var resp AuthResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "test-token", resp.Token)
				require.NotNil(t, resp.User)
				assert.Equal(t, "frieda", resp.User.Username)
			}

			// The hash stays server-side
			assert.NotContains(t, w.Body.String(), "hashed_password")
			assert.NotContains(t, w.Body.String(), "secret123")
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	user := &domain.User{
		ID:             uuid.New(),
		Username:       "frieda",
		HashedPassword: "$2a$10$somethinghashed",
		CreatedAt:      time.Now().UTC(),
	}

	tests := []struct {
		name            string
		payload         map[string]interface{}
		storeErr        error
		passwordMatches bool
		wantStatus      int
		wantToken       bool
	}{
		{
			name: "valid login",
			payload: map[string]interface{}{
				"username": "frieda",
				"password": "secret123",
			},
			passwordMatches: true,
			wantStatus:      http.StatusOK,
			wantToken:       true,
		},
		{
			name: "unknown user",
			payload: map[string]interface{}{
				"username": "nobody",
				"password": "secret123",
			},
			storeErr:   store.ErrUserNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name: "wrong password",
			payload: map[string]interface{}{
				"username": "frieda",
				"password": "wrongpass",
			},
			passwordMatches: false,
			wantStatus:      http.StatusUnauthorized,
		},
		{
			name: "missing password",
			payload: map[string]interface{}{
				"username": "frieda",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "store failure",
			payload: map[string]interface{}{
				"username": "frieda",
				"password": "secret123",
			},
			storeErr:   assert.AnError,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			userStore := &mocks.MockUserStore{User: user, Err: tc.storeErr}
			jwtService := &mocks.MockJWTService{Token: "test-token"}
			passwordVerifier := &mocks.MockPasswordVerifier{ShouldSucceed: tc.passwordMatches}
			handler := NewAuthHandler(userStore, jwtService, passwordVerifier)

			w := postJSON(t, handler.Login, "/api/auth/login", tc.payload)

			assert.Equal(t, tc.wantStatus, w.Code)

			if tc.wantToken {
				var resp AuthResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "test-token", resp.Token)
				assert.Nil(t, resp.User)
			}
		})
	}
}

func TestLoginMalformedBody(t *testing.T) {
	t.Parallel()

	userStore := &mocks.MockUserStore{}
	jwtService := &mocks.MockJWTService{Token: "test-token"}
	handler := NewAuthHandler(userStore, jwtService, &mocks.MockPasswordVerifier{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
