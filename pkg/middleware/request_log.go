package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/signupdesk/signupdesk/backend/pkg/logger"
)

// RequestLogger logs one structured line per request after it completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).Round(time.Millisecond).String(),
			"ip", c.ClientIP(),
		)
	}
}
