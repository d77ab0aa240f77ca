package utils

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse writes the uniform failure body. message must be safe for clients.
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// SuccessResponse writes payload with success and message merged in at the top level.
func SuccessResponse(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}
