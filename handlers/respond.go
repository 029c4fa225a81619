package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/signupdesk/signupdesk/backend/pkg/logger"
)

// fail logs err at the request boundary and writes {message} with status.
func fail(c *gin.Context, status int, message string, err error) {
	if err != nil {
		logger.Errorw(message, "error", err, "method", c.Request.Method, "path", c.Request.URL.Path)
	}
	c.JSON(status, gin.H{"message": message})
}

// bindOptionalJSON decodes the body into v; an empty body leaves v untouched.
func bindOptionalJSON(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
