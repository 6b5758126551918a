package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole corta a requisição se a credencial não tiver a role
// exigida. Sempre atrás de AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := c.Get(ContextUserRole)
		if !ok || current.(string) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
