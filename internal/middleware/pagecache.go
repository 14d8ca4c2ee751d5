package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	pageCachePrefix  = "blog:page-cache:"
	pageCacheMaxBody = 1 << 20 // 1 MiB
)

type cachedPage struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	BodyBase64  string `json:"body_base64"`
}

type pageBodyWriter struct {
	gin.ResponseWriter
	body     []byte
	overflow bool
}

func (w *pageBodyWriter) Write(data []byte) (int, error) {
	w.capture(data)
	return w.ResponseWriter.Write(data)
}

func (w *pageBodyWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *pageBodyWriter) capture(data []byte) {
	if w.overflow || len(data) == 0 {
		return
	}
	if len(w.body)+len(data) > pageCacheMaxBody {
		w.overflow = true
		return
	}
	w.body = append(w.body, data...)
}

// PageCache caches successful GET responses in Redis for ttl, for the public
// surfaces that do not run their own revalidation policy (home, feed,
// sitemap). Without Redis it is a pass-through.
func PageCache(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := pageCachePrefix + c.Request.URL.RequestURI()

		if raw, err := rdb.Get(ctx, key).Bytes(); err == nil && len(raw) > 0 {
			var page cachedPage
			if json.Unmarshal(raw, &page) == nil {
				if body, err := base64.StdEncoding.DecodeString(page.BodyBase64); err == nil {
					c.Header("X-Page-Cache", "hit")
					setSWRHeader(c, ttl)
					c.Data(page.Status, page.ContentType, body)
					c.Abort()
					return
				}
			}
		}

		setSWRHeader(c, ttl)
		buffer := &pageBodyWriter{ResponseWriter: c.Writer}
		c.Writer = buffer
		c.Next()

		status := c.Writer.Status()
		if status != http.StatusOK || buffer.overflow || len(buffer.body) == 0 {
			return
		}

		raw, err := json.Marshal(cachedPage{
			Status:      status,
			ContentType: c.Writer.Header().Get("Content-Type"),
			BodyBase64:  base64.StdEncoding.EncodeToString(buffer.body),
		})
		if err != nil {
			return
		}
		_ = rdb.Set(ctx, key, raw, ttl).Err()
	}
}

func setSWRHeader(c *gin.Context, ttl time.Duration) {
	seconds := int(ttl / time.Second)
	if seconds <= 0 {
		seconds = 60
	}
	c.Header("Cache-Control",
		"s-maxage="+strconv.Itoa(seconds)+", stale-while-revalidate="+strconv.Itoa(seconds))
}
