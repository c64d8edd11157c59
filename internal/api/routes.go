package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/config"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/handler"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/logger"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/metrics"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/middleware"
)

// RouteDeps carries everything route registration needs.
type RouteDeps struct {
	Config     *config.Config
	Logger     logger.Logger
	Metrics    *metrics.Metrics
	Registry   *prometheus.Registry
	Stats      *handler.StatsHandler
	Submission *handler.SubmissionHandler
	PingStore  handler.PingFunc
	Limiter    middleware.Limiter
}

// SetupRoutes registers all API routes.
//
// Dashboard reads sit behind HTTP basic auth when credentials are configured.
// Submission intake is rate limited per client IP.
func SetupRoutes(router *gin.Engine, deps RouteDeps) {
	health := handler.Health(deps.Config.Service.Name, deps.Config.Service.Version, deps.PingStore)
	router.GET("/health", health)
	router.HEAD("/health", health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	dashboard := router.Group("/api")
	if deps.Config.Dashboard.Enabled() {
		dashboard.Use(gin.BasicAuth(gin.Accounts{
			deps.Config.Dashboard.User: deps.Config.Dashboard.Password,
		}))
	}
	dashboard.GET("/stats/aggregate", deps.Stats.Aggregate)
	dashboard.GET("/submissions/summary", deps.Submission.Summary)
	dashboard.GET("/submissions/:id", deps.Submission.Detail)

	intake := router.Group("/api")
	intake.Use(middleware.RateLimit(deps.Limiter, deps.Logger, deps.Metrics))
	intake.POST("/submit", deps.Submission.Submit)
}
