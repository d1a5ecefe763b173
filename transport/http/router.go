package http

import (
	"github.com/gin-gonic/gin"

	"github.com/SiddeshHulagur/Expense-Tracker/service"
)

// SetupRouter sets up the Gin router.
func SetupRouter(authService *service.AuthService, expenseService *service.ExpenseService) *gin.Engine {
	router := gin.Default()

	authHandlers := NewAuthHandlers(authService)
	expenseHandlers := NewExpenseHandlers(expenseService)

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandlers.Register)
		auth.POST("/login", authHandlers.Login)
	}

	// Protected API routes
	api := router.Group("/api")
	api.Use(AuthMiddleware(authService))
	{
		api.GET("/expenses", expenseHandlers.List)
		api.POST("/expenses", expenseHandlers.Create)
		api.GET("/expenses/:id", expenseHandlers.Get)
		api.PUT("/expenses/:id", expenseHandlers.Update)
		api.DELETE("/expenses/:id", expenseHandlers.Delete)
	}

	return router
}
