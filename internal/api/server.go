package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EHWIYA/adsp-quiz-back/internal/config"
	"github.com/EHWIYA/adsp-quiz-back/internal/logger"
	"github.com/EHWIYA/adsp-quiz-back/internal/telemetry"
)

// Server wraps the HTTP server with its configured router.
type Server struct {
	httpServer *http.Server
	logger     logger.Logger
}

// NewServer builds the gin router and the HTTP server around it.
func NewServer(handler *Handler, cfg config.ServiceConfig, tp *telemetry.Provider, log logger.Logger) *Server {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))

	SetupRoutes(router, handler, tp)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: log,
	}
}

// Start serves HTTP until the listener closes.
func (s *Server) Start() error {
	s.logger.Info("http server listening", logger.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// requestLogger logs one line per request. Health probes are skipped to
// keep the log readable.
func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/health" || path == "/ready" || path == "/metrics" {
			c.Next()
			return
		}

		c.Next()

		log.Info("request",
			logger.String("method", c.Request.Method),
			logger.String("path", path),
			logger.Int("status", c.Writer.Status()))
	}
}
