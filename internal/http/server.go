// Package http provides the HTTP server and middleware for the application.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/allisson/piivault/internal/config"
	piiHTTP "github.com/allisson/piivault/internal/pii/http"
)

// Server represents the main HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
	ready  atomic.Bool
}

// NewServer creates the HTTP server with all routes and middleware wired.
// The metricsMiddleware parameter may be nil when metrics are disabled.
func NewServer(
	cfg *config.Config,
	piiHandler *piiHTTP.PiiHandler,
	metricsMiddleware gin.HandlerFunc,
	logger *slog.Logger,
) *Server {
	gin.SetMode(cfg.GetGinMode())

	server := &Server{logger: logger}

	router := gin.New()
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))
	router.Use(gin.Recovery())

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsMiddleware != nil {
		router.Use(metricsMiddleware)
	}

	router.GET("/health", healthHandler)
	router.GET("/ready", server.readinessHandler)

	v1 := router.Group("/v1/pii")
	if cfg.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, logger))
	}
	v1.POST("/seal", piiHandler.SealHandler)
	v1.POST("/unseal", piiHandler.UnsealHandler)
	v1.POST("/reseal", piiHandler.ResealHandler)
	v1.POST("/inspect", piiHandler.InspectHandler)

	server.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// readinessHandler reports whether the server is accepting work. Readiness
// flips to false at the start of shutdown, before the listener closes.
func (s *Server) readinessHandler(c *gin.Context) {
	if !s.ready.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.ready.Store(true)
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.ready.Store(false)
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
