package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/fintrack/internal/middleware"
	"github.com/mmynk/fintrack/internal/models"
)

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.Categories.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err, "Failed to fetch categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var in models.CategoryInput
	if !bind(c, &in) {
		return
	}
	category, err := h.Categories.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		fail(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	var patch models.CategoryPatch
	if !bind(c, &patch) {
		return
	}
	category, err := h.Categories.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), patch)
	if err != nil {
		fail(c, err, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.Categories.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		fail(c, err, "Failed to delete category")
		return
	}
	success(c)
}
