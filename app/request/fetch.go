package request

import (
	"errors"
	"net/http"

	"ishan/rms-api/internal"
	"ishan/rms-api/internal/model"
	"ishan/rms-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Fetch returns a single request. Only the owner or a manager may see it;
// everyone else gets the same 404 a missing row would produce, so existence
// doesn't leak.
func Fetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)
	role := c.GetString("role")

	id, ok := parseID(c, requestID)
	if !ok {
		return
	}

	req, err := d.Requests.ByID(c.Request.Context(), id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch request", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err != nil || (req.CreatedBy != userID && role != string(model.RoleManager)) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, req)
}
