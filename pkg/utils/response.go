package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// SuccessResponse sends a 200 with fields merged into the success envelope
func SuccessResponse(c *gin.Context, fields gin.H) {
	body := gin.H{"status": StatusSuccess}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// ErrorResponse sends a standard error JSON response
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"status":  StatusError,
		"message": message,
	})
}

// AbortWithError sends the error envelope and stops the handler chain
func AbortWithError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{
		"status":  StatusError,
		"message": message,
	})
}

// MessageResponse sends a simple message response
func MessageResponse(c *gin.Context, message string) {
	SuccessResponse(c, gin.H{"message": message})
}
