package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/fintrack/internal/middleware"
)

func (h *Handler) GetAnalytics(c *gin.Context) {
	report, err := h.Analytics.Analytics(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err, "Failed to fetch analytics")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) GetDashboard(c *gin.Context) {
	dashboard, err := h.Analytics.Dashboard(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err, "Failed to fetch dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
