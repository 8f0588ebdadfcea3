// Package request contains the reimbursement request endpoints available
// to the owner
package request

import (
	"net/http"
	"strconv"

	"ishan/rms-api/internal"
	"ishan/rms-api/internal/model"
	"ishan/rms-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type requestBody struct {
	Title    string         `json:"title"`
	Amount   float64        `json:"amount"`
	Date     string         `json:"date"`
	Category model.Category `json:"category"`
}

// parseID pulls the numeric :id path param, responding 400 itself when the
// param isn't a number.
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

func Create(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

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

	req := &model.Request{
		Title:     data.Title,
		Amount:    data.Amount,
		Date:      data.Date,
		Category:  data.Category,
		CreatedBy: userID,
		Status:    model.StatusDraft,
	}

	if err := d.Requests.Create(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create request", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":        req.ID,
		"requestID": requestID,
	})
}
