package handlers

import (
	"encoding/json"
	"net/http"

	"faktura-backend/internal/auth"
	"faktura-backend/internal/config"
	"faktura-backend/pkg/utils"
)

// AuthHandler authenticates the single operator account configured for the
// service
type AuthHandler struct {
	cfg        *config.Config
	jwtManager *auth.JWTManager
}

func NewAuthHandler(cfg *config.Config, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{cfg: cfg, jwtManager: jwtManager}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Login verifies credentials against the configured operator account and
// issues a JWT
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if h.cfg.Auth.PasswordHash == "" {
		utils.Error(w, http.StatusServiceUnavailable, "Authentication is not configured")
		return
	}

	if req.Username != h.cfg.Auth.Username || !auth.VerifyPassword(h.cfg.Auth.PasswordHash, req.Password) {
		utils.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.jwtManager.GenerateToken(req.Username)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	utils.JSON(w, http.StatusOK, loginResponse{Token: token, Username: req.Username})
}
