// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input decoding, dispatch, output serialization.
// The API NEVER performs pricing logic.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"window-quote/internal/logging"

	"window-quote/core/engine"
)

// Server is the API server
type Server struct {
	handler *Handler
	router  *gin.Engine
	version string
}

// NewServer creates a new API server over a dispatcher
func NewServer(version string, dispatcher *engine.Dispatcher, batchConcurrency int) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestID(), requestLogger(), recovery())

	s := &Server{
		handler: NewHandler(dispatcher, batchConcurrency),
		router:  router,
		version: version,
	}

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.router.POST("/quotes/batch", s.handler.HandleBatch)
	s.router.POST("/quotes/:category", s.handler.HandleQuote)

	// Supporting endpoints
	s.router.GET("/categories", s.handler.HandleCategories)
	s.router.GET("/categories/:category/options/:key", s.handler.HandleOptions)
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/version", s.handleVersion)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleVersion handles GET /version
func (s *Server) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":     s.version,
		"engine":      "window-quote",
		"api_version": "v1",
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("API server listening", zap.String("addr", addr), zap.String("version", s.version))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logging.Info("API server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
