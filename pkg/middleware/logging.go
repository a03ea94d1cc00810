package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"lead-capture/pkg/logger"
)

// RequestLogger writes one structured entry per request.
// Client addresses are deliberately left out.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("http")

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", c.Writer.Status(),
			"duration_ms", float64(time.Since(start).Microseconds()) / 1000,
			"user_agent", c.Request.UserAgent(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		if c.Writer.Status() >= 500 {
			log.Errorw("HTTP request", fields...)
		} else {
			log.Infow("HTTP request", fields...)
		}
	}
}
