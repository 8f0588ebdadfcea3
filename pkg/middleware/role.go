package middleware

import (
	"net/http"

	"ishan/rms-api/internal/model"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route on the session claim's role. Runs after the
// JWT middleware, so a mismatch here is an authorization failure (403),
// not an authentication one.
func RequireRole(required model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		if c.GetString("role") != string(required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "Insufficient permissions",
				"requestID": requestID,
			})
			return
		}

		c.Next()
	}
}
