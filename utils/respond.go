package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RespondWithError writes a JSON error body and logs it once at the boundary.
func RespondWithError(c *gin.Context, code int, message string) {
	logrus.WithFields(logrus.Fields{
		"status": code,
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	}).Warn(message)
	c.JSON(code, gin.H{"error": message})
}

// RespondWithValidationError carries field-level messages so clients can map
// them back onto form inputs.
func RespondWithValidationError(c *gin.Context, message string, fields map[string]string) {
	c.JSON(400, gin.H{"error": message, "fields": fields})
}
