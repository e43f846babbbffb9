package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/fintrack/internal/middleware"
	"github.com/mmynk/fintrack/internal/models"
)

func (h *Handler) ListTransactions(c *gin.Context) {
	txns, err := h.Transactions.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err, "Failed to fetch transactions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txns})
}

func (h *Handler) CreateTransaction(c *gin.Context) {
	var in models.TransactionInput
	if !bind(c, &in) {
		return
	}
	txn, err := h.Transactions.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		fail(c, err, "Failed to create transaction")
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": txn})
}

func (h *Handler) UpdateTransaction(c *gin.Context) {
	var patch models.TransactionPatch
	if !bind(c, &patch) {
		return
	}
	txn, err := h.Transactions.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), patch)
	if err != nil {
		fail(c, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": txn})
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	if err := h.Transactions.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		fail(c, err, "Failed to delete transaction")
		return
	}
	success(c)
}
