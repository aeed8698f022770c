// Package server exposes the chat pipeline over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dstarikov/shipshape/internal/chat"
	"github.com/dstarikov/shipshape/internal/model"
)

// Server wraps the gin engine and the chat pipeline.
type Server struct {
	engine   *gin.Engine
	pipeline *chat.Pipeline
	addr     string
	logger   *zap.Logger
}

// New creates a server around an already-wired pipeline.
func New(cfg model.ServerConfig, pipeline *chat.Pipeline, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger))

	s := &Server{
		engine:   engine,
		pipeline: pipeline,
		addr:     cfg.Addr,
		logger:   logger,
	}

	engine.GET("/healthz", s.handleHealth)
	api := engine.Group("/api")
	{
		api.POST("/chat", s.handleChat)
	}

	return s
}

// Run serves until the context is cancelled, then drains in-flight
// requests for up to five seconds.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("listening", zap.String("addr", s.addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
