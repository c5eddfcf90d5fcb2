package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura-backend/internal/auth"
	"faktura-backend/internal/config"
)

func newTestAuthHandler(t *testing.T, password string) *AuthHandler {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "faktura-backend"
	cfg.Auth.Username = "admin"
	cfg.Auth.PasswordHash = hash

	return NewAuthHandler(cfg, auth.NewJWTManager(cfg))
}

func loginWith(t *testing.T, h *AuthHandler, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	return rec
}

func TestLoginIssuesToken(t *testing.T) {
	h := newTestAuthHandler(t, "lozinka123")

	rec := loginWith(t, h, "admin", "lozinka123")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])
	assert.Equal(t, "admin", resp["username"])
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	h := newTestAuthHandler(t, "lozinka123")

	assert.Equal(t, http.StatusUnauthorized, loginWith(t, h, "admin", "pogresna").Code)
	assert.Equal(t, http.StatusUnauthorized, loginWith(t, h, "other", "lozinka123").Code)
}

func TestLoginUnavailableWithoutConfiguredHash(t *testing.T) {
	h := newTestAuthHandler(t, "lozinka123")
	h.cfg.Auth.PasswordHash = ""

	assert.Equal(t, http.StatusServiceUnavailable, loginWith(t, h, "admin", "lozinka123").Code)
}
