package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/fintrack/internal/service"
)

// Signup handles POST /signup.
func (h *Handler) Signup(c *gin.Context) {
	var req service.SignupRequest
	if !bind(c, &req) {
		return
	}
	session, err := h.Auth.Signup(c.Request.Context(), req)
	if err != nil {
		fail(c, err, "Signup failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    session.User,
		"token":   session.Token,
	})
}

// Login handles POST /login.
func (h *Handler) Login(c *gin.Context) {
	var req service.LoginRequest
	if !bind(c, &req) {
		return
	}
	session, err := h.Auth.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, err, "Login failed")
		return
	}
	c.JSON(http.StatusOK, session)
}
