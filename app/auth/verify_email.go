package auth

import (
	"errors"
	"net/http"

	"ishan/rms-api/internal"
	internalauth "ishan/rms-api/internal/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func VerifyEmail(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No verification token provided",
			"requestID": requestID,
		})
		return
	}

	if err := d.Auth.VerifyEmail(c.Request.Context(), token); err != nil {
		if errors.Is(err, internalauth.ErrInvalidToken) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid or expired token",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to verify email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Email verified successfully",
		"requestID": requestID,
	})
}
