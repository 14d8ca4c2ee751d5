package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPageCacheWithoutRedisPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", PageCache(nil, time.Minute), func(c *gin.Context) {
		c.String(http.StatusOK, "hello")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", w.Body.String())
	assert.Empty(t, w.Header().Get("X-Page-Cache"))
}

func TestRateLimitWithoutRedisPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/createComment", RateLimit(nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < rateLimitMax*2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/createComment", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestPageBodyWriterStopsCapturingPastLimit(t *testing.T) {
	w := &pageBodyWriter{}
	w.capture(make([]byte, pageCacheMaxBody))
	assert.False(t, w.overflow)

	w.capture([]byte{0})
	assert.True(t, w.overflow)
	assert.Len(t, w.body, pageCacheMaxBody)
}
