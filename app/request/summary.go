package request

import (
	"net/http"

	"ishan/rms-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Summary counts the caller's own requests per status.
func Summary(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	counts, err := d.Requests.SummaryByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to summarize requests", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, counts)
}
