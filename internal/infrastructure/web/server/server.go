package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"portfolio-value-service/internal/infrastructure/config"
	"portfolio-value-service/internal/infrastructure/logging"
)

// Server encapsulates HTTP server configuration
type Server struct {
	httpServer *http.Server
	port       int
}

// NewServer creates a new server instance using the configured timeouts
func NewServer(handler http.Handler, cfg config.ServerConfig) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		port: cfg.Port,
	}
}

// Start starts the HTTP server. It returns nil after a graceful Stop.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(listener)
}

// Serve accepts connections on listener until Stop is called
func (s *Server) Serve(listener net.Listener) error {
	ctx := context.Background()

	logging.Info(ctx, "HTTP server starting", logging.Fields{
		"addr": listener.Addr().String(),
	})

	logging.Info(ctx, "Available endpoints", logging.Fields{
		"endpoints": []string{
			fmt.Sprintf("POST http://localhost:%d/api/v1/portfolio/value", s.port),
			fmt.Sprintf("POST http://localhost:%d/getPortfolioValue", s.port),
			fmt.Sprintf("GET  http://localhost:%d/api/v1/currencies", s.port),
			fmt.Sprintf("GET  http://localhost:%d/api/v1/markets", s.port),
			fmt.Sprintf("GET  http://localhost:%d/health", s.port),
			fmt.Sprintf("GET  http://localhost:%d/ready", s.port),
		},
	})

	if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the HTTP server gracefully
func (s *Server) Stop(ctx context.Context) error {
	logging.Info(ctx, "Stopping HTTP server gracefully", logging.Fields{
		"port": s.port,
	})

	return s.httpServer.Shutdown(ctx)
}

// GetPort returns the configured port
func (s *Server) GetPort() int {
	return s.port
}
