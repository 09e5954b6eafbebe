package api

import (
	"net/http"

	"akashic/config"
	"akashic/domain/entities"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string  `json:"username" binding:"required"`
	Email    string  `json:"email" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Phone    *string `json:"phone"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	ManaBalance int64  `json:"mana_balance"`
}

func toUserResponse(u *entities.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		ManaBalance: u.ManaBalance,
	}
}

// setSessionCookie attaches the session token as an HTTP-only cookie
func setSessionCookie(c *gin.Context, session *entities.Session) {
	cfg := config.Get()
	maxAge := int(cfg.SessionTTL.Seconds())
	c.SetCookie(cfg.SessionCookieName, session.Token, maxAge, "/", "", cfg.Environment == "production", true)
}

func clearSessionCookie(c *gin.Context) {
	cfg := config.Get()
	c.SetCookie(cfg.SessionCookieName, "", -1, "/", "", cfg.Environment == "production", true)
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, session, err := s.accounts.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}

	setSessionCookie(c, session)
	c.JSON(http.StatusCreated, gin.H{
		"user":  toUserResponse(user),
		"token": session.Token,
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, session, err := s.accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	setSessionCookie(c, session)
	c.JSON(http.StatusOK, gin.H{
		"user":  toUserResponse(user),
		"token": session.Token,
	})
}

func (s *Server) handleLogout(c *gin.Context) {
	if err := s.accounts.Logout(c.Request.Context(), sessionToken(c)); err != nil {
		respondError(c, err)
		return
	}

	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (s *Server) handleMe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(currentUser(c))})
}
