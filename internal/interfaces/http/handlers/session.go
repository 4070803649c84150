// internal/interfaces/http/handlers/session.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/novastore/internal/domain/session"
	"github.com/your-org/novastore/internal/domain/user"
	"github.com/your-org/novastore/internal/pkg/auth"
)

// SessionHandler handles login, logout and the current session
type SessionHandler struct {
	store      *session.Store
	jwtManager *auth.JWTManager
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(store *session.Store, jwtManager *auth.JWTManager) *SessionHandler {
	return &SessionHandler{store: store, jwtManager: jwtManager}
}

// LoginRequest represents the login form. There are no credentials; any
// non-empty email signs the shopper in, and name is optional.
type LoginRequest struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name"`
}

// SessionResponse represents the session payload
type SessionResponse struct {
	User  *user.User `json:"user"`
	Token string     `json:"token,omitempty"`
}

// Login handles POST /session/login
func (h *SessionHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	u := h.store.Login(req.Email, req.Name)

	token, err := h.jwtManager.GenerateSessionToken(u.ID, u.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"data":    SessionResponse{User: u, Token: token},
	})
}

// Logout handles POST /session/logout
func (h *SessionHandler) Logout(c *gin.Context) {
	h.store.Logout()

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetSession handles GET /session
func (h *SessionHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Session retrieved successfully",
		"data":    SessionResponse{User: h.store.CurrentUser()},
	})
}

// UpdateProfile handles PUT /profile
func (h *SessionHandler) UpdateProfile(c *gin.Context) {
	var req user.Update
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if !h.store.UpdateUser(req) {
		respondError(c, session.ErrNotLoggedIn)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"data":    h.store.CurrentUser(),
	})
}
