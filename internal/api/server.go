// Package api assembles the gin engine, routes, and HTTP server lifecycle.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/config"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/logger"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/middleware"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 10 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 15 * time.Second
)

// Server wraps the HTTP server with lifecycle management.
type Server struct {
	router *gin.Engine
	server *http.Server
	logger logger.Logger
	cfg    *config.Config
}

// NewServer builds the gin engine with the standard middleware chain and the
// given route setup, and wraps it in an http.Server with sane timeouts.
func NewServer(cfg *config.Config, log logger.Logger, setupRoutes func(*gin.Engine)) *Server {
	if cfg.Service.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Recovery first so panics in later middleware are caught too.
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS())

	if setupRoutes != nil {
		setupRoutes(router)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Service.Port),
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return &Server{
		router: router,
		server: httpServer,
		logger: log,
		cfg:    cfg,
	}
}

// Router returns the underlying gin engine.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the server until it is shut down or fails to listen.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		logger.String("address", s.server.Addr),
		logger.String("service", s.cfg.Service.Name),
		logger.String("version", s.cfg.Service.Version),
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.logger.Info("HTTP server stopped gracefully")
	return nil
}

// RunWithGracefulShutdown starts the server and shuts it down cleanly on
// SIGINT, SIGTERM, or context cancellation.
func (s *Server) RunWithGracefulShutdown(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		s.logger.Info("Shutdown signal received", logger.String("signal", sig.String()))
	case <-ctx.Done():
		s.logger.Info("Context cancelled, shutting down")
	}

	// Fresh context: the incoming one may already be cancelled.
	return s.Shutdown(context.Background())
}
