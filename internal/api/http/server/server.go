package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dtroode/account-server/internal/logger"
	"github.com/dtroode/account-server/internal/server"
)

// Server wraps an http.Server behind a pluggable listener so it can serve
// plain TCP or TLS.
type Server struct {
	httpServer *http.Server
	listener   server.Listener
	addr       string
	logger     *logger.Logger
}

// New creates a new HTTP server for the given handler.
func New(addr string, handler http.Handler, listener server.Listener, logger *logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
		listener: listener,
		addr:     addr,
		logger:   logger,
	}
}

// Run starts serving and blocks until the server stops. A graceful Stop is
// reported as a nil error.
func (s *Server) Run() error {
	ln, err := s.listener.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	s.logger.Info("HTTP server listening", "addr", s.addr)

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server stopped: %w", err)
	}

	return nil
}

// Stop shuts the server down gracefully, waiting for in-flight requests
// until the context is done.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	return nil
}
