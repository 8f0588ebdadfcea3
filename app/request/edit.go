package request

import (
	"errors"
	"net/http"

	"ishan/rms-api/internal"
	"ishan/rms-api/internal/store"
	"ishan/rms-api/internal/workflow"
	"ishan/rms-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Edit(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	id, ok := parseID(c, requestID)
	if !ok {
		return
	}

	var data requestBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.RequestFieldsValidator(data.Title, data.Amount, data.Date, data.Category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	err := d.Workflow.EditDraft(c.Request.Context(), id, userID, store.DraftFields{
		Title:    data.Title,
		Amount:   data.Amount,
		Date:     data.Date,
		Category: data.Category,
	})
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

		zap.L().Error("Failed to edit request", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Updated",
		"requestID": requestID,
	})
}
