package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/api"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/config"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/handler"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/logger"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/metrics"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/middleware"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/stats"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	client, coll, err := storage.Connect(context.Background(), cfg.Mongo)
	if err != nil {
		log.Error("Failed to connect to MongoDB", logger.Error(err))
		return 1
	}
	defer func() {
		if dcErr := storage.Disconnect(client); dcErr != nil {
			log.Error("MongoDB disconnect failed", logger.Error(dcErr))
		}
	}()

	log.Info("MongoDB connected",
		logger.String("database", cfg.Mongo.Database),
		logger.String("collection", cfg.Mongo.Collection),
	)

	return runServer(cfg, log, storage.NewSubmissions(coll))
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.GetConfigPath("config.yml"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// newLimiter picks the submission rate limiter backend. Redis when configured
// so the window is shared across replicas, in-process otherwise.
func newLimiter(cfg *config.Config, log logger.Logger) middleware.Limiter {
	if cfg.RateLimit.RedisAddress != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.RedisAddress,
			Password: cfg.RateLimit.RedisPassword,
			DB:       cfg.RateLimit.RedisDB,
		})
		log.Info("Rate limiter using Redis", logger.String("address", cfg.RateLimit.RedisAddress))
		return middleware.NewRedisLimiter(client, cfg.RateLimit.MaxPerWindow, cfg.RateLimit.Window())
	}
	return middleware.NewMemoryLimiter(cfg.RateLimit.MaxPerWindow, cfg.RateLimit.Window())
}

// runServer wires all dependencies and starts the HTTP server.
func runServer(cfg *config.Config, log logger.Logger, store *storage.Submissions) int {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	met := metrics.New(registry)

	engine := stats.NewEngine(store, log, met)

	deps := api.RouteDeps{
		Config:     cfg,
		Logger:     log,
		Metrics:    met,
		Registry:   registry,
		Stats:      handler.NewStatsHandler(engine, log),
		Submission: handler.NewSubmissionHandler(store, log, met, cfg.Service.SummaryLimit),
		PingStore:  store.Ping,
		Limiter:    newLimiter(cfg, log),
	}

	server := api.NewServer(cfg, log, func(router *gin.Engine) {
		api.SetupRoutes(router, deps)
	})

	log.Info("SoundScape survey service starting",
		logger.Int("port", cfg.Service.Port),
		logger.Bool("dashboard_auth", cfg.Dashboard.Enabled()),
	)

	if err := server.RunWithGracefulShutdown(context.Background()); err != nil {
		log.Error("Server error", logger.Error(err))
		return 1
	}

	log.Info("SoundScape survey service exited cleanly")
	return 0
}
