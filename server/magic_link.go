package server

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const magicLinkTTL = 15 * time.Minute

type magicLinkRequest struct {
	Email string `json:"email"`
}

// handleMagicLink issues a single-use passwordless login token for a
// planner account. The response never reveals whether the email exists.
func (s *Server) handleMagicLink(c echo.Context) error {
	var req magicLinkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email required"})
	}

	// Only issue tokens for known accounts, but answer identically either way
	var userID string
	err := s.db.QueryRow(`SELECT id FROM users WHERE email = $1`, req.Email).Scan(&userID)
	if err != nil {
		return c.JSON(http.StatusOK, map[string]string{"message": "if email exists, a magic link will be sent"})
	}

	// Generate token
	tokenBytes := make([]byte, sessionTokenLen)
	if _, err := rand.Read(tokenBytes); err != nil {
		c.Logger().Error("token generation error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	token := hex.EncodeToString(tokenBytes)

	// Store token
	expiresAt := time.Now().Add(magicLinkTTL)
	_, err = s.db.Exec(`
		INSERT INTO magic_links (email, token, expires_at)
		VALUES ($1, $2, $3)`,
		req.Email, token, expiresAt,
	)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	c.Logger().Infof("Magic link issued for planner account: %s", req.Email)

	// In production, send email here
	return c.JSON(http.StatusOK, map[string]string{
		"message": "if email exists, a magic link will be sent",
		"token":   token, // Remove in production
	})
}

// handleMagicLinkVerify exchanges an unexpired, unused magic link token
// for a planner session.
func (s *Server) handleMagicLinkVerify(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "token required"})
	}

	// Look up token
	var email string
	var expiresAt time.Time
	var used bool
	err := s.db.QueryRow(`
		SELECT email, expires_at, used FROM magic_links
		WHERE token = $1`,
		token,
	).Scan(&email, &expiresAt, &used)

	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid token"})
	}

	if used {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "token already used"})
	}

	if time.Now().After(expiresAt) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "token expired"})
	}

	// Burn the token before issuing the session
	if _, err := s.db.Exec(`UPDATE magic_links SET used = TRUE WHERE token = $1`, token); err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	// Resolve account
	var userID string
	if err := s.db.QueryRow(`SELECT id FROM users WHERE email = $1`, email).Scan(&userID); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
	}

	// Open session
	sessionToken, sessionExpires, err := s.createSession(userID)
	if err != nil {
		c.Logger().Error("session error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	c.Logger().Infof("Magic link login for planner account: %s", email)

	return c.JSON(http.StatusOK, authResponse{
		Token:     sessionToken,
		ExpiresAt: sessionExpires.Format(time.RFC3339),
		UserID:    userID,
	})
}
