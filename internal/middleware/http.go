package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/logger"
)

// RequestLogger logs each HTTP request once, after the handler runs, with
// method, path, status, duration, and client IP.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		method := c.Request.Method

		c.Next()

		fields := []logger.Field{
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("duration", time.Since(start)),
			logger.String("client_ip", c.ClientIP()),
		}
		if query != "" {
			fields = append(fields, logger.String("query", query))
		}

		if len(c.Errors) > 0 {
			messages := make([]string, len(c.Errors))
			for i, err := range c.Errors {
				messages[i] = err.Err.Error()
			}
			fields = append(fields, logger.Strings("errors", messages))
			log.Error("HTTP request with errors", fields...)
			return
		}

		// Health probes are frequent and uninteresting at info level.
		if strings.HasPrefix(path, "/health") {
			log.Debug("HTTP request", fields...)
			return
		}
		log.Info("HTTP request", fields...)
	}
}

// Recovery converts panics into a 500 response and logs them instead of
// letting the process crash mid-request.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Panic recovered",
					logger.Any("panic", r),
					logger.String("path", c.Request.URL.Path),
					logger.String("method", c.Request.Method),
					logger.String("client_ip", c.ClientIP()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"message": "Internal server error",
				})
			}
		}()

		c.Next()
	}
}

// CORS allows the survey frontend to call the API from another origin. The
// submission form and dashboard are public, so any origin is accepted.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
