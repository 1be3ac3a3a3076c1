package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan/vibe-jobs/internal/types"
)

// setupTestAuthHandler creates an AuthHandler backed by the in-memory store.
func setupTestAuthHandler(_ *testing.T) (*AuthHandler, *fakeIdentityStore) {
	store := newFakeIdentityStore()
	identitySvc := NewIdentityService(store, testPasswordConfig())
	return NewAuthHandler(identitySvc, testJWTService()), store
}

func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	handler, _ := setupTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestAuthHandler_Register_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		reqBody map[string]string
	}{
		{
			name:    "missing email",
			reqBody: map[string]string{"password": "password123"},
		},
		{
			name:    "invalid email",
			reqBody: map[string]string{"email": "invalid-email", "password": "password123"},
		},
		{
			name:    "password too short",
			reqBody: map[string]string{"email": "test@example.com", "password": "short"},
		},
		{
			name:    "missing password",
			reqBody: map[string]string{"email": "test@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := setupTestAuthHandler(t)

			body, _ := json.Marshal(tt.reqBody)
			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Register(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "validation error")
		})
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	handler, _ := setupTestAuthHandler(t)

	body, _ := json.Marshal(map[string]string{
		"email":    "dev@example.com",
		"password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Register(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response types.LoginResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.NotNil(t, response.Identity)
	assert.Equal(t, "dev@example.com", response.Identity.Email)
	assert.NotEmpty(t, response.Token)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	handler, _ := setupTestAuthHandler(t)

	body, _ := json.Marshal(map[string]string{
		"email":    "dev@example.com",
		"password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Register(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	w = httptest.NewRecorder()
	handler.Register(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	handler, _ := setupTestAuthHandler(t)

	registerBody, _ := json.Marshal(map[string]string{
		"email":    "dev@example.com",
		"password": "password123",
	})
	w := httptest.NewRecorder()
	handler.Register(w, httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(registerBody)))
	require.Equal(t, http.StatusCreated, w.Code)

	loginBody, _ := json.Marshal(map[string]string{
		"email":    "dev@example.com",
		"password": "password123",
	})
	w = httptest.NewRecorder()
	handler.Login(w, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(loginBody)))

	require.Equal(t, http.StatusOK, w.Code)

	var response types.LoginResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.NotEmpty(t, response.Token)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	handler, _ := setupTestAuthHandler(t)

	registerBody, _ := json.Marshal(map[string]string{
		"email":    "dev@example.com",
		"password": "password123",
	})
	w := httptest.NewRecorder()
	handler.Register(w, httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(registerBody)))
	require.Equal(t, http.StatusCreated, w.Code)

	loginBody, _ := json.Marshal(map[string]string{
		"email":    "dev@example.com",
		"password": "wrong-password",
	})
	w = httptest.NewRecorder()
	handler.Login(w, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(loginBody)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_UpdatePassword(t *testing.T) {
	handler, _ := setupTestAuthHandler(t)

	registerBody, _ := json.Marshal(map[string]string{
		"email":    "dev@example.com",
		"password": "password123",
	})
	w := httptest.NewRecorder()
	handler.Register(w, httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(registerBody)))
	require.Equal(t, http.StatusCreated, w.Code)

	var registered types.LoginResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&registered))

	t.Run("wrong current password", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{
			"current_password": "wrong",
			"new_password":     "newpassword1",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/auth/password", bytes.NewReader(body))
		handler.UpdatePasswordWithIdentityID(w, req, registered.Identity.ID)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{
			"current_password": "password123",
			"new_password":     "newpassword1",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/auth/password", bytes.NewReader(body))
		handler.UpdatePasswordWithIdentityID(w, req, registered.Identity.ID)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Password updated successfully")
	})

	t.Run("unknown identity", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{
			"current_password": "newpassword1",
			"new_password":     "anotherpass2",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/auth/password", bytes.NewReader(body))
		handler.UpdatePasswordWithIdentityID(w, req, uuid.New())

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
