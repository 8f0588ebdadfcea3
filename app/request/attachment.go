package request

import (
	"net/http"

	"ishan/rms-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Attachment uploads a receipt file for the caller's DRAFT request. The
// file is stored first and the reference recorded with a conditional
// update; if the request meanwhile left DRAFT the update affects nothing
// and the caller gets the usual invalid-transition answer.
func Attachment(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	id, ok := parseID(c, requestID)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No file provided",
			"requestID": requestID,
		})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open uploaded file", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer f.Close()

	ref, err := d.Receipts.Save(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to store attachment",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store receipt", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	n, err := d.Requests.SetAttachment(c.Request.Context(), id, userID, ref)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to record attachment", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if n == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid transition",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attachment": ref,
		"requestID":  requestID,
	})
}
