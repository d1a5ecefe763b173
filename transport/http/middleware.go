package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SiddeshHulagur/Expense-Tracker/service"
)

const userIDKey = "userID"

// AuthMiddleware creates middleware that resolves the bearer token to a
// user. Any token failure is a 401; it never surfaces as a server error.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")

		if len(auth) < 8 || auth[:7] != "Bearer " {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			return
		}

		token := auth[7:]

		user, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(userIDKey, user.ID)

		c.Next()
	}
}

// currentUserID reads the authenticated user's ID set by AuthMiddleware.
func currentUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
