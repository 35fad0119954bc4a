package utils

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse writes {"error": message}.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// MessageResponse writes {"message": message}.
func MessageResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// SuccessResponse writes {key: data}, or data itself when key is empty.
func SuccessResponse(c *gin.Context, statusCode int, key string, data interface{}) {
	if key == "" {
		c.JSON(statusCode, data)
		return
	}
	c.JSON(statusCode, gin.H{key: data})
}
