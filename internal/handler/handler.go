// Package handler adapts the ledger services to gin HTTP handlers.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/fintrack/internal/middleware"
	"github.com/mmynk/fintrack/internal/service"
)

// Handler serves the JSON API.
type Handler struct {
	Auth         *service.AuthService
	Transactions *service.TransactionService
	Accounts     *service.AccountService
	Categories   *service.CategoryService
	Budgets      *service.BudgetService
	Profiles     *service.ProfileService
	Analytics    *service.AnalyticsService
}

var errInvalidBody = errors.New("invalid request body")

// statusFor maps a service error code to an HTTP status.
func statusFor(code service.Code) int {
	switch code {
	case service.CodeInvalidArgument, service.CodeFailedPrecondition:
		return http.StatusBadRequest
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeAborted:
		return http.StatusConflict
	case service.CodeUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as {error}. Internal errors are logged and replaced by
// fallback so store details never reach the client.
func fail(c *gin.Context, err error, fallback string) {
	status := statusFor(service.CodeOf(err))
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error(fallback,
			"path", c.Request.URL.Path,
			"user_id", middleware.UserID(c),
			"error", err,
		)
		msg = fallback
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": msg})
}

// bind decodes the JSON body into v, answering 400 on failure.
func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody.Error()})
		return false
	}
	return true
}

func success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
