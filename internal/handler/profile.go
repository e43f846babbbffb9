package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/fintrack/internal/middleware"
	"github.com/mmynk/fintrack/internal/models"
)

func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.Profiles.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err, "Failed to fetch profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var patch models.ProfilePatch
	if !bind(c, &patch) {
		return
	}
	profile, err := h.Profiles.Update(c.Request.Context(), middleware.UserID(c), patch)
	if err != nil {
		fail(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
