package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK sends a 200 response with a message payload.
func OK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// OKData sends a 200 response with arbitrary data.
func OKData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": message})
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": message})
}

// InternalError sends a 500 error response carrying the diagnostic detail.
func InternalError(c *gin.Context, message string, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": message, "error": detail})
}

// TooManyRequests sends a 429 error response.
func TooManyRequests(c *gin.Context, message string) {
	c.Header("Retry-After", "1")
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": message})
}
