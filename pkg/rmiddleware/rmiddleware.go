package rmiddleware

import (
	"net/http"
	"strings"

	"github.com/Waruntorn-K/shuttleq/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RoleMiddleware rejects callers whose token role matches none of the
// required roles. Runs after AuthMiddleware.
func RoleMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get(middleware.AuthRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: role not found in context"})
			return
		}
		role, _ := roleValue.(string)

		for _, required := range requiredRoles {
			if strings.EqualFold(role, required) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":    "Forbidden",
			"message":  "You don't have permission to access this resource",
			"required": requiredRoles,
		})
	}
}

// OwnerMiddleware restricts a route to venue owners.
func OwnerMiddleware() gin.HandlerFunc {
	return RoleMiddleware("owner")
}
