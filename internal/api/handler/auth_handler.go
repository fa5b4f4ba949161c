package handler

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alphalocks/reports-be/internal/api/dto"
	"github.com/alphalocks/reports-be/internal/api/middleware"
	"github.com/alphalocks/reports-be/internal/config"
)

// AuthHandler issues JWT tokens against the configured user table
type AuthHandler struct {
	logger *slog.Logger
	auth   *config.AuthConfig
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(deps *Dependencies) *AuthHandler {
	return &AuthHandler{
		logger: deps.Logger,
		auth:   &deps.Config.Auth,
	}
}

// Login handles POST /api/v1/auth/login
// Verifies credentials against the SHA-256 user table and issues a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	stored, ok := h.auth.Users[req.Username]
	if !ok || !passwordMatches(req.Password, stored) {
		h.logger.Warn("login rejected", slog.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, expiresAt, err := middleware.GenerateToken(req.Username, h.auth)
	if err != nil {
		h.logger.Error("token generation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		Username:  req.Username,
	})
}

// passwordMatches compares the SHA-256 digest of the supplied password with
// the stored hex digest in constant time.
func passwordMatches(password, storedHex string) bool {
	stored, err := hex.DecodeString(storedHex)
	if err != nil {
		return false
	}
	digest := sha256.Sum256([]byte(password))
	return subtle.ConstantTimeCompare(digest[:], stored) == 1
}
