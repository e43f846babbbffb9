package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/fintrack/internal/middleware"
	"github.com/mmynk/fintrack/internal/models"
)

func (h *Handler) ListBudgets(c *gin.Context) {
	budgets, err := h.Budgets.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err, "Failed to fetch budgets")
		return
	}
	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

func (h *Handler) CreateBudget(c *gin.Context) {
	var in models.BudgetInput
	if !bind(c, &in) {
		return
	}
	budget, err := h.Budgets.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		fail(c, err, "Failed to create budget")
		return
	}
	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

func (h *Handler) UpdateBudget(c *gin.Context) {
	var patch models.BudgetPatch
	if !bind(c, &patch) {
		return
	}
	budget, err := h.Budgets.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), patch)
	if err != nil {
		fail(c, err, "Failed to update budget")
		return
	}
	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

func (h *Handler) DeleteBudget(c *gin.Context) {
	if err := h.Budgets.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		fail(c, err, "Failed to delete budget")
		return
	}
	success(c)
}

// BudgetProgress reports spending against every budget in its current
// period.
func (h *Handler) BudgetProgress(c *gin.Context) {
	progress, err := h.Budgets.Progress(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err, "Failed to fetch budget progress")
		return
	}
	c.JSON(http.StatusOK, gin.H{"budgets": progress})
}
