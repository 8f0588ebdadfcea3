package manager

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"ishan/rms-api/internal"
	"ishan/rms-api/internal/workflow"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func parseID(c *gin.Context, requestID string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request ID",
			"requestID": requestID,
		})
		return 0, false
	}

	return uint(id), true
}

func Approve(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	managerID := c.MustGet("userID").(string)

	id, ok := parseID(c, requestID)
	if !ok {
		return
	}

	respondedAt, err := d.Workflow.Approve(c.Request.Context(), id, managerID)
	if err != nil {
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

		zap.L().Error("Failed to approve request", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Manager approved",
		"responded_at": respondedAt.Format(time.RFC3339),
		"requestID":    requestID,
	})
}
