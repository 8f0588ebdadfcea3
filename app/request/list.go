package request

import (
	"net/http"

	"ishan/rms-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// List returns the caller's own requests, newest first. Ownership scoping
// happens in the query, not after the fact.
func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	out, err := d.Requests.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list requests", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, out)
}
