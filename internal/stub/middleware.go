package stub

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/udusdev/biovote/internal/logger"
)

// RequestLogger tags each request with an ID and logs its outcome.
func RequestLogger() gin.HandlerFunc {
	log := logger.WithContext("component", "http")

	return func(c *gin.Context) {
		startTime := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("req_%s", uuid.NewString()[:8])
		}
		c.Set("request_id", requestID)

		c.Next()

		latency := time.Since(startTime)
		status := c.Writer.Status()

		logFn := log.Info
		if status >= 500 {
			logFn = log.Error
		} else if status >= 400 {
			logFn = log.Warn
		}

		logFn("Request completed",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", latency,
			"remote_addr", c.ClientIP(),
		)
	}
}
