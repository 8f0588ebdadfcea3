// Package manager contains the endpoints gated on the MANAGER role
package manager

import (
	"net/http"

	"ishan/rms-api/internal"
	"ishan/rms-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// List returns the pending work queue: SUBMITTED requests only, newest
// first, with the owner's username joined in.
func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	out, err := d.Requests.ListByStatus(c.Request.Context(), model.StatusSubmitted)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list submitted requests", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, out)
}
