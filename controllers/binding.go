package controllers

import (
	"room-booking/services"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the body into dst. Malformed JSON and unknown fields are
// InvalidInput.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return services.InvalidInput("invalid request body: " + err.Error())
	}
	return nil
}
