package manager

import (
	"errors"
	"net/http"
	"time"

	"ishan/rms-api/internal"
	"ishan/rms-api/internal/workflow"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Reject(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	managerID := c.MustGet("userID").(string)

	id, ok := parseID(c, requestID)
	if !ok {
		return
	}

	var data struct {
		Comment string `json:"comment"`
	}
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	respondedAt, err := d.Workflow.Reject(c.Request.Context(), id, managerID, data.Comment)
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrCommentRequired):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Rejection comment is required",
				"requestID": requestID,
			})
		case errors.Is(err, workflow.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid transition",
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to reject request", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Rejected",
		"responded_at": respondedAt.Format(time.RFC3339),
		"requestID":    requestID,
	})
}
