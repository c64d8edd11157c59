// Package handler implements the HTTP handlers for the survey API: the
// aggregate dashboard payload, the submission list and detail views, the
// intake route, and health.
package handler

import "github.com/gin-gonic/gin"

// respondOK writes the standard success envelope.
func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// respondError writes the standard failure envelope.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
