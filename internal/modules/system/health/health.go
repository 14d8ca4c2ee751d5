package health

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saima-salar/blog-website-with-sanity-schema/internal/pkg/response"
)

var processStart = time.Now()

// RegisterRoutes mounts the liveness endpoint. The content store is not
// probed here: a slow upstream should not flap the process health.
func RegisterRoutes(r *gin.Engine) {
	r.GET("/api/health", func(c *gin.Context) {
		response.OKData(c, gin.H{
			"status": "ok",
			"uptime": int64(time.Since(processStart).Seconds()),
		})
	})
}
