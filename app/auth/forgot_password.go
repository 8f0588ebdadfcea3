package auth

import (
	"net/http"

	"ishan/rms-api/internal"

	"github.com/gin-gonic/gin"
)

func ForgotPassword(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBind(&data); err != nil || data.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Email required",
			"requestID": requestID,
		})
		return
	}

	// The response below must be byte-identical whether or not the email
	// exists; everything that could differ happens inside ForgotPassword
	// and is logged server-side only.
	d.Auth.ForgotPassword(c.Request.Context(), data.Email)

	c.JSON(http.StatusOK, gin.H{
		"message": "If account exists, reset link sent",
	})
}
