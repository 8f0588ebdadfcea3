package request

import (
	"errors"
	"net/http"

	"ishan/rms-api/internal"
	"ishan/rms-api/internal/workflow"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Submit(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	id, ok := parseID(c, requestID)
	if !ok {
		return
	}

	if err := d.Workflow.Submit(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, workflow.ErrInvalidTransition) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid transition",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to submit request", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Submitted",
		"requestID": requestID,
	})
}
