package utils

import (
	"errors"
	"log"

	"room-booking/services"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the per-request id.
const RequestIDKey = "request_id"

// RespondError writes err as a structured error payload. Anything that is
// not an *AppError is logged in full and reported as a generic internal error.
func RespondError(c *gin.Context, err error) {
	var appErr *services.AppError
	if !errors.As(err, &appErr) {
		log.Printf("❌ [%s] %s %s: %v", c.GetString(RequestIDKey), c.Request.Method, c.Request.URL.Path, err)
		appErr = services.ErrInternal
	}

	body := gin.H{"error": appErr.Message, "code": appErr.Kind}
	for k, v := range appErr.Fields {
		body[k] = v
	}
	c.JSON(appErr.Status(), body)
}

// AbortWithError is RespondError for middleware: later handlers do not run.
func AbortWithError(c *gin.Context, err error) {
	RespondError(c, err)
	c.Abort()
}
