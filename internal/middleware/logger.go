package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger returns a Gin middleware that logs each request using zap.
// Health probes are logged at debug level to keep the request log readable.
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Int("size", c.Writer.Size()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if cache := c.Writer.Header().Get("X-Page-Cache"); cache != "" {
			fields = append(fields, zap.String("page_cache", cache))
		}
		if path == "/api/health" {
			log.Debug("request", fields...)
			return
		}
		log.Info("request", fields...)
	}
}
