package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/fintrack/internal/middleware"
	"github.com/mmynk/fintrack/internal/models"
)

func (h *Handler) ListAccounts(c *gin.Context) {
	accounts, err := h.Accounts.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err, "Failed to fetch accounts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

func (h *Handler) CreateAccount(c *gin.Context) {
	var in models.AccountInput
	if !bind(c, &in) {
		return
	}
	account, err := h.Accounts.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		fail(c, err, "Failed to create account")
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": account})
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	var patch models.AccountPatch
	if !bind(c, &patch) {
		return
	}
	account, err := h.Accounts.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), patch)
	if err != nil {
		fail(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": account})
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	if err := h.Accounts.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		fail(c, err, "Failed to delete account")
		return
	}
	success(c)
}

// ReconcileAccounts lists accounts whose stored balance disagrees with
// the transaction log.
func (h *Handler) ReconcileAccounts(c *gin.Context) {
	discrepancies, err := h.Accounts.Reconcile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err, "Failed to reconcile accounts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"discrepancies": discrepancies})
}
