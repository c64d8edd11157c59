package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// healthCheckTimeout bounds the store ping inside the health handler.
const healthCheckTimeout = 2 * time.Second

// PingFunc checks connectivity to the submission store.
type PingFunc func(ctx context.Context) error

// HealthResponse is the health check response format.
type HealthResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Health returns a handler reporting service status and store connectivity.
// The endpoint stays 200 with status "degraded" when the store ping fails so
// load balancers keep routing while operators see the problem.
func Health(serviceName, version string, pingStore PingFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := HealthResponse{
			Status:  "healthy",
			Service: serviceName,
			Version: version,
			Checks:  map[string]string{},
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		if err := pingStore(ctx); err != nil {
			resp.Status = "degraded"
			resp.Checks["mongo"] = err.Error()
		} else {
			resp.Checks["mongo"] = "ok"
		}

		c.JSON(http.StatusOK, resp)
	}
}
