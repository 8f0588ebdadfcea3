package auth

import (
	"errors"
	"net/http"

	"ishan/rms-api/internal"
	internalauth "ishan/rms-api/internal/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginBody struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func Login(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if data.Identifier == "" || data.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Missing credentials",
			"requestID": requestID,
		})
		return
	}

	token, user, err := d.Auth.Login(c.Request.Context(), data.Identifier, data.Password)
	if err != nil {
		switch {
		case errors.Is(err, internalauth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     "Invalid credentials",
				"requestID": requestID,
			})
		case errors.Is(err, internalauth.ErrNotVerified):
			c.JSON(http.StatusForbidden, gin.H{
				"error":     "Please verify your email before logging in",
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to log user in", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}
