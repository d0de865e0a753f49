package server

import (
	"net/http"
	"time"

	ginhandler "exercise-tracker-service/internal/adapter/gin/handler"
	ginmiddleware "exercise-tracker-service/internal/adapter/gin/middleware"
	ginrouter "exercise-tracker-service/internal/adapter/gin/router"
	"exercise-tracker-service/internal/config"

	"go.uber.org/zap"
)

// Server holds the HTTP server and its dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance with the configured router
func New(cfg *config.Config, l *zap.Logger, handler *ginhandler.TrackerHandler, rateLimiter *ginmiddleware.RateLimiter) *Server {
	router := ginrouter.SetupRouter(handler, rateLimiter, cfg.App.StaticDir, l)

	return &Server{
		Config: cfg,
		Logger: l,
		HTTP: &http.Server{
			Addr:              ":" + cfg.App.HTTPPort,
			Handler:           router,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))
	if err := s.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
