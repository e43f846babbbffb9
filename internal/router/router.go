// Package router wires the HTTP routes of the API.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/mmynk/fintrack/internal/auth"
	"github.com/mmynk/fintrack/internal/handler"
	"github.com/mmynk/fintrack/internal/metrics"
	"github.com/mmynk/fintrack/internal/middleware"
)

// SetupRouter builds the gin engine. mode is a gin mode ("debug",
// "release" or "test"); empty leaves the current mode.
func SetupRouter(mode string, h *handler.Handler, jwtManager *auth.JWTManager) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORS(), middleware.RequestLogger(), middleware.Metrics())

	r.GET("/health", handler.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)

	protected := r.Group("")
	protected.Use(middleware.RequireAuth(jwtManager))

	protected.GET("/transactions", h.ListTransactions)
	protected.POST("/transactions", h.CreateTransaction)
	protected.PUT("/transactions/:id", h.UpdateTransaction)
	protected.DELETE("/transactions/:id", h.DeleteTransaction)

	protected.GET("/accounts", h.ListAccounts)
	protected.POST("/accounts", h.CreateAccount)
	protected.GET("/accounts/reconcile", h.ReconcileAccounts)
	protected.PUT("/accounts/:id", h.UpdateAccount)
	protected.DELETE("/accounts/:id", h.DeleteAccount)

	protected.GET("/categories", h.ListCategories)
	protected.POST("/categories", h.CreateCategory)
	protected.PUT("/categories/:id", h.UpdateCategory)
	protected.DELETE("/categories/:id", h.DeleteCategory)

	protected.GET("/budgets", h.ListBudgets)
	protected.POST("/budgets", h.CreateBudget)
	protected.GET("/budgets/progress", h.BudgetProgress)
	protected.PUT("/budgets/:id", h.UpdateBudget)
	protected.DELETE("/budgets/:id", h.DeleteBudget)

	protected.GET("/profile", h.GetProfile)
	protected.PUT("/profile", h.UpdateProfile)

	protected.GET("/analytics", h.GetAnalytics)
	protected.GET("/dashboard", h.GetDashboard)

	return r
}
