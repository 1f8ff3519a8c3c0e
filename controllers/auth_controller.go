package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/middleware"
)

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	sessions *middleware.SessionManager
}

func NewAuthController(sessions *middleware.SessionManager) *AuthController {
	return &AuthController{sessions: sessions}
}

// Login handles POST {admin}/login. A valid password sets the session cookie.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	token, expiresAt, err := ac.sessions.Authenticate(req.Password)
	if err != nil {
		zap.L().Warn("Failed admin login attempt", zap.String("ip", c.ClientIP()))
		respondError(c, err)
		return
	}

	middleware.SetSessionCookie(c, token, expiresAt)
	respondOK(c, http.StatusOK, gin.H{"expiresAt": expiresAt})
}

// Logout handles POST {admin}/logout.
func (ac *AuthController) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	respondOK(c, http.StatusOK, gin.H{"loggedOut": true})
}

// Session handles GET {admin}/session, a cheap authenticated ping the back
// office uses to verify the cookie is still valid.
func (ac *AuthController) Session(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{"authenticated": true})
}
